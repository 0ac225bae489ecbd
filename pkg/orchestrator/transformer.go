package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

// Transformer mutates a field set before it is rendered. Implementations can
// relabel fields, tighten constraints, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, set *field.Set) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, set *field.Set) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, set *field.Set) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, set)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// The document shape supports set-level copy and per-field patches:
//
//	{
//	  "title": "Contact support",
//	  "action": "/support",
//	  "fields": {
//	    "email": {"label": "Work email", "required": true, "errorMessage": "Use your work address"},
//	    "bio":   {"control": "textarea", "maxLength": 500}
//	  },
//	  "order": ["email", "bio"]
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title  string                    `json:"title"`
	Action string                    `json:"action"`
	Method string                    `json:"method"`
	Fields map[string]jsonFieldPatch `json:"fields"`
	Order  []string                  `json:"order"`
}

type jsonFieldPatch struct {
	Label        string         `json:"label"`
	Description  string         `json:"description"`
	Placeholder  string         `json:"placeholder"`
	ErrorMessage string         `json:"errorMessage"`
	Default      *string        `json:"default"`
	Control      string         `json:"control"`
	Required     *bool          `json:"required"`
	MinLength    *int           `json:"minLength"`
	MaxLength    *int           `json:"maxLength"`
	Options      []field.Option `json:"options"`
	Searchable   *bool          `json:"searchable"`
	Rename       string         `json:"rename"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	for name, patch := range document.Fields {
		if patch.Control == "" {
			continue
		}
		if _, ok := field.ParseControl(patch.Control); !ok {
			return nil, fmt.Errorf("json preset transformer: field %q: %w %q", name, field.ErrUnknownControl, patch.Control)
		}
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied set. Patches
// naming unknown fields are an error so presets cannot drift silently.
func (t *JSONPresetTransformer) Transform(ctx context.Context, set *field.Set) error {
	if set == nil {
		return errors.New("json preset transformer: field set is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		set.Title = t.document.Title
	}
	if t.document.Action != "" {
		set.Action = t.document.Action
	}
	if t.document.Method != "" {
		set.Method = t.document.Method
	}

	for name, patch := range t.document.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := indexOfField(set.Fields, name)
		if idx < 0 {
			return fmt.Errorf("json preset transformer: field %q not found", name)
		}
		applyFieldPatch(&set.Fields[idx], patch)
	}

	if len(t.document.Order) > 0 {
		set.Fields = reorder(set.Fields, t.document.Order)
	}
	return nil
}

func applyFieldPatch(f *field.Field, patch jsonFieldPatch) {
	if patch.Label != "" {
		f.Label = patch.Label
	}
	if patch.Description != "" {
		f.Description = patch.Description
	}
	if patch.Placeholder != "" {
		f.Placeholder = patch.Placeholder
	}
	if patch.ErrorMessage != "" {
		f.ErrorMessage = patch.ErrorMessage
	}
	if patch.Default != nil {
		f.Default = *patch.Default
	}
	if patch.Control != "" {
		if control, ok := field.ParseControl(patch.Control); ok {
			f.Control = control
		}
	}
	if patch.Required != nil {
		f.Constraint.Required = *patch.Required
	}
	if patch.MinLength != nil {
		value := *patch.MinLength
		f.Constraint.MinLength = &value
	}
	if patch.MaxLength != nil {
		value := *patch.MaxLength
		f.Constraint.MaxLength = &value
	}
	if len(patch.Options) > 0 {
		f.Options = append([]field.Option(nil), patch.Options...)
	}
	if patch.Searchable != nil {
		f.Searchable = *patch.Searchable
	}
	if name := strings.TrimSpace(patch.Rename); name != "" {
		f.Name = name
	}
}

func indexOfField(fields []field.Field, name string) int {
	for idx := range fields {
		if fields[idx].Name == name {
			return idx
		}
	}
	return -1
}

// reorder moves the named fields to the front in the given order; the rest
// keep their relative positions.
func reorder(fields []field.Field, order []string) []field.Field {
	out := make([]field.Field, 0, len(fields))
	used := make(map[int]bool, len(order))
	for _, name := range order {
		if idx := indexOfField(fields, name); idx >= 0 && !used[idx] {
			out = append(out, fields[idx])
			used[idx] = true
		}
	}
	for idx, f := range fields {
		if !used[idx] {
			out = append(out, f)
		}
	}
	return out
}
