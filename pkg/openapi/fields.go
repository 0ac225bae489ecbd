package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Extension keys read from request-body properties.
const (
	ExtensionLabel        = "x-formkit-label"
	ExtensionPlaceholder  = "x-formkit-placeholder"
	ExtensionErrorMessage = "x-formkit-error-message"
	ExtensionSearchable   = "x-formkit-searchable"
	ExtensionOrder        = "x-formkit-order"
)

// ErrNoRequestBody is returned when an operation has nothing to fill in.
var ErrNoRequestBody = errors.New("openapi: operation has no request body properties")

// FieldOptions tunes FieldSet.
type FieldOptions struct {
	Widgets *widgets.Registry
}

// FieldOption mutates FieldOptions.
type FieldOption func(*FieldOptions)

// WithWidgets swaps the registry used to pick controls.
func WithWidgets(reg *widgets.Registry) FieldOption {
	return func(opts *FieldOptions) {
		if reg != nil {
			opts.Widgets = reg
		}
	}
}

// FieldSet converts the request body of op into a field set. Each top-level
// property becomes a field; required, minLength, maxLength and enum become
// the field's constraint and options. Properties are ordered by
// x-formkit-order when present, then by name.
func FieldSet(op Operation, options ...FieldOption) (field.Set, error) {
	cfg := FieldOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Widgets == nil {
		cfg.Widgets = widgets.NewRegistry()
	}

	body := op.RequestBody
	if len(body.Properties) == 0 {
		return field.Set{}, fmt.Errorf("%w: %s", ErrNoRequestBody, op.ID)
	}

	set := field.Set{
		ID:     op.ID,
		Title:  firstNonEmpty(op.Summary, body.Title),
		Action: op.Path,
		Method: op.Method,
	}
	for _, name := range propertyOrder(body) {
		prop := body.Properties[name]
		set.Fields = append(set.Fields, convertProperty(name, prop, body.IsRequired(name), cfg.Widgets))
	}

	if err := set.Check(); err != nil {
		return field.Set{}, fmt.Errorf("openapi: %s: %w", op.ID, err)
	}
	return set, nil
}

func convertProperty(name string, prop Schema, required bool, reg *widgets.Registry) field.Field {
	f := field.Field{
		Name:         name,
		Label:        firstNonEmpty(prop.Extensions[ExtensionLabel], prop.Title, humanize(name)),
		Placeholder:  prop.Extensions[ExtensionPlaceholder],
		Description:  prop.Description,
		ErrorMessage: prop.Extensions[ExtensionErrorMessage],
		Searchable:   isTrue(prop.Extensions[ExtensionSearchable]),
		Control:      reg.Resolve(hintFor(name, prop)),
	}

	f.Constraint = validation.Constraint{
		Required:  required,
		MinLength: prop.MinLength,
		MaxLength: prop.MaxLength,
	}

	enum := prop.Enum
	if prop.Type == "array" && prop.Items != nil {
		enum = prop.Items.Enum
		f.Multiple = len(enum) > 0
	}
	for _, value := range enum {
		label := fmt.Sprint(value)
		f.Options = append(f.Options, field.Option{Value: label, Label: label})
	}
	if prop.Default != nil {
		f.Default = defaultString(prop.Default)
	}
	return f
}

func hintFor(name string, s Schema) widgets.Hint {
	h := widgets.Hint{
		Name:       name,
		Type:       s.Type,
		Format:     s.Format,
		MaxLength:  s.MaxLength,
		Extensions: s.Extensions,
	}
	for _, value := range s.Enum {
		h.Enum = append(h.Enum, fmt.Sprint(value))
	}
	if s.Items != nil {
		item := hintFor(name, *s.Items)
		h.Items = &item
	}
	return h
}

func propertyOrder(s Schema) []string {
	seen := make(map[string]struct{}, len(s.Properties))
	out := make([]string, 0, len(s.Properties))

	explicit := s.Order
	if raw := strings.TrimSpace(s.Extensions[ExtensionOrder]); raw != "" {
		explicit = strings.Split(raw, ",")
	}
	for _, name := range explicit {
		name = strings.TrimSpace(name)
		if _, ok := s.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func defaultString(value any) string {
	switch typed := value.(type) {
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(typed)
	}
}

// humanize turns "firstName" or "first_name" into "First name".
func humanize(name string) string {
	var b strings.Builder
	prevLower := false
	for idx, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case idx == 0:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func isTrue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
