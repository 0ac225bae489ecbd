package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/field"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

// app carries the state shared by every command. Tests replace the prompt
// driver and clock.
type app struct {
	locale   string
	logLevel string
	verbose  bool

	log    *logger.Logger
	now    func() time.Time
	prompt tui.PromptDriver
}

func newApp() *app {
	return &app{now: time.Now}
}

func (a *app) setupLogger(w io.Writer) error {
	level := a.logLevel
	if a.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: w})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.log = log
	return nil
}

// formSource names where a command reads its fields from: a YAML/JSON field
// set file or an OpenAPI operation.
type formSource struct {
	form      string
	openapi   string
	operation string
	preset    string
	timeout   time.Duration
}

func (s *formSource) validate() error {
	switch {
	case s.form == "" && s.openapi == "":
		return fmt.Errorf("one of --form or --openapi is required")
	case s.form != "" && s.openapi != "":
		return fmt.Errorf("--form and --openapi are mutually exclusive")
	case s.openapi != "" && s.operation == "":
		return fmt.Errorf("--operation is required with --openapi")
	}
	return nil
}

// orchestrator builds an orchestrator whose registry holds the vanilla
// renderer and, when out is non-nil, the terminal renderer writing to out.
func (a *app) orchestrator(src *formSource, out io.Writer, tuiOpts ...tui.Option) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New(vanilla.WithDefaultStyles())
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	if out != nil {
		opts := append([]tui.Option{tui.WithOutput(out)}, tuiOpts...)
		if a.prompt != nil {
			opts = append(opts, tui.WithPromptDriver(a.prompt))
		}
		terminal, err := tui.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("tui renderer: %w", err)
		}
		if err := registry.Register(terminal); err != nil {
			return nil, err
		}
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(formkit.NewLoader(pkgopenapi.WithHTTP(src.timeout))),
	}
	if src.preset != "" {
		data, err := os.ReadFile(src.preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	return orchestrator.New(options...), nil
}

// request resolves src into an orchestrator request.
func (a *app) request(src *formSource, rendererName string) (orchestrator.Request, error) {
	req := orchestrator.Request{
		Renderer: rendererName,
		RenderOptions: render.RenderOptions{
			Locale: a.locale,
			Today:  a.now(),
		},
	}
	if src.form != "" {
		file, err := os.Open(src.form)
		if err != nil {
			return req, fmt.Errorf("open form: %w", err)
		}
		defer file.Close()
		set, err := field.Load(file)
		if err != nil {
			return req, fmt.Errorf("%s: %w", src.form, err)
		}
		req.Set = &set
		return req, nil
	}

	source, err := parseSource(src.openapi)
	if err != nil {
		return req, err
	}
	req.Source = source
	req.OperationID = src.operation
	return req, nil
}

func (a *app) generate(ctx context.Context, src *formSource, rendererName string, out io.Writer, tuiOpts ...tui.Option) ([]byte, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	gen, err := a.orchestrator(src, out, tuiOpts...)
	if err != nil {
		return nil, err
	}
	req, err := a.request(src, rendererName)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(map[string]any{"renderer": rendererName, "form": src.form, "openapi": src.openapi}).Debug("generating form")
	return gen.Generate(ctx, req)
}

func parseSource(raw string) (pkgopenapi.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, fmt.Errorf("openapi source is empty")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path), nil
}
