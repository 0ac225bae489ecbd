package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logger"
)

func main() {
	dotenv := flag.String("env", ".env", "Optional dotenv file read before the environment")
	flag.Parse()

	if err := run(*dotenv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dotenv string) error {
	cfg, err := config.Load(dotenv)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, HumanReadable: cfg.LogHuman})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	handler, err := newServer(cfg, log)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	log.WithFields(map[string]any{"addr": cfg.Addr, "base": cfg.BasePath, "locale": cfg.Locale}).Info("listening")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "shutdown")
		return err
	}
	log.Info("stopped")
	return nil
}
