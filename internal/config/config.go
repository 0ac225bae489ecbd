// Package config reads formkit-server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "FORMKIT_"

// Server holds the settings of formkit-server. Variables are read with
// Prefix, so Addr comes from FORMKIT_HTTP_ADDR.
type Server struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	BasePath        string        `env:"BASE_PATH" envDefault:"/"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Locale   string `env:"LOCALE" envDefault:"en"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogHuman bool   `env:"LOG_HUMAN" envDefault:"false"`

	// CalendarRollover lets /api/calendar accept months outside 0..11.
	CalendarRollover bool  `env:"CALENDAR_ROLLOVER" envDefault:"false"`
	MaxBodyBytes     int64 `env:"VALIDATE_MAX_BODY_BYTES" envDefault:"65536"`
}

var ErrInvalid = errors.New("config: invalid value")

// Load reads Server from the process environment. When dotenv names an
// existing file its variables are loaded first without overriding ones
// already set. A missing dotenv file is not an error.
func Load(dotenv string) (Server, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("config: load %s: %w", dotenv, err)
		}
	}
	return parse(env.Options{Prefix: Prefix, Environment: env.ToMap(os.Environ())})
}

// FromMap reads Server from an explicit variable set.
func FromMap(vars map[string]string) (Server, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (Server, error) {
	var cfg Server
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Server{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Server) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: %sHTTP_ADDR is empty", ErrInvalid, Prefix)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: %sVALIDATE_MAX_BODY_BYTES must be positive", ErrInvalid, Prefix)
	case c.ShutdownTimeout < 0:
		return fmt.Errorf("%w: %sHTTP_SHUTDOWN_TIMEOUT must not be negative", ErrInvalid, Prefix)
	}
	return nil
}
