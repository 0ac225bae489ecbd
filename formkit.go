// Package formkit is the entry point of the module: it re-exports the types
// most hosts need and wraps the orchestrator for one-call form generation.
package formkit

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/field"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Set is a form: ordered fields plus the action they submit to.
type Set = field.Set

// Constraint is the rule set of one field.
type Constraint = validation.Constraint

// Verdict is the outcome of validating a value.
type Verdict = validation.Verdict

// MonthGrid is the 42-cell calendar grid of one month.
type MonthGrid = calendar.MonthGrid

// Validate runs the default engine over value.
func Validate(value string, c Constraint) Verdict {
	return validation.Validate(value, c)
}

// BuildMonthGrid lays out a month, 0-based, with rollover for out of range
// months.
func BuildMonthGrid(year, month int) MonthGrid {
	return calendar.BuildMonthGrid(year, month)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the OpenAPI source, builds a field set for the requested
// operation, and renders it using the named renderer. It is the simplest entry
// point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateHTMLFromSet renders a hand-written field set.
func GenerateHTMLFromSet(ctx context.Context, set Set, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Set:           &set,
		RenderOptions: opts,
	})
}

// FieldsFromDocument returns the field set an operation describes.
func FieldsFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID string, options ...orchestrator.Option) (Set, error) {
	gen := orchestrator.New(options...)
	return gen.Fields(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
	})
}
