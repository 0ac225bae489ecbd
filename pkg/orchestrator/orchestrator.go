package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-formkit/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formkit/internal/openapi/parser"
	"github.com/goliatone/go-formkit/pkg/field"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithWidgets injects the registry that picks a control per property.
func WithWidgets(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers Transformers that mutate the field set after it is
// built and before it is rendered. They run in registration order.
func WithTransformer(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Orchestrator coordinates the full pipeline from OpenAPI document to rendered
// output. It applies sensible defaults (vanilla renderer, built-in widgets)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	widgets         *widgets.Registry
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when Document
	// or Set is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already have the
	// raw payload.
	Document *pkgopenapi.Document

	// Set bypasses OpenAPI entirely. Transformers still run against a copy.
	Set *field.Set

	// OperationID selects which OpenAPI operation to render into a form.
	OperationID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as method overrides,
	// prefilled values, or server-side errors that renderers can surface.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → parser → field set → renderer sequence and
// returns the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	set, err := o.Fields(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, set, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves the renderer a request would use.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

// Fields resolves the field set a request describes without rendering it.
func (o *Orchestrator) Fields(ctx context.Context, req Request) (field.Set, error) {
	if ctx == nil {
		return field.Set{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return field.Set{}, err
	}
	if err := o.ready(); err != nil {
		return field.Set{}, err
	}

	var set field.Set
	if req.Set != nil {
		set = *req.Set
		set.Fields = append([]field.Field(nil), req.Set.Fields...)
	} else {
		built, err := o.fieldsFromDocument(ctx, req)
		if err != nil {
			return field.Set{}, err
		}
		set = built
	}

	if err := o.applyTransformers(ctx, &set); err != nil {
		return field.Set{}, err
	}
	if err := set.Check(); err != nil {
		return field.Set{}, fmt.Errorf("orchestrator: field set: %w", err)
	}
	return set, nil
}

func (o *Orchestrator) fieldsFromDocument(ctx context.Context, req Request) (field.Set, error) {
	if req.OperationID == "" {
		return field.Set{}, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return field.Set{}, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return field.Set{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	op, ok := operations[req.OperationID]
	if !ok {
		return field.Set{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	set, err := pkgopenapi.FieldSet(op, pkgopenapi.WithWidgets(o.widgets))
	if err != nil {
		return field.Set{}, fmt.Errorf("orchestrator: build field set: %w", err)
	}
	return set, nil
}

func (o *Orchestrator) ready() error {
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, set *field.Set) error {
	for _, t := range o.transformers {
		if err := t.Transform(ctx, set); err != nil {
			return fmt.Errorf("orchestrator: transform field set: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
