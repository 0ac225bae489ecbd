package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrFieldName is returned for fields without a name.
	ErrFieldName = errors.New("field: name is required")
	// ErrDuplicateField is returned when a set declares a name twice.
	ErrDuplicateField = errors.New("field: duplicate name")
	// ErrUnknownControl is returned for controls outside Controls().
	ErrUnknownControl = errors.New("field: unknown control")
	// ErrMissingOptions is returned when a radio or select has no options.
	ErrMissingOptions = errors.New("field: options required")
)

// Option is one choice of a radio group or select.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Text returns the label, falling back to the value.
func (o Option) Text() string {
	if strings.TrimSpace(o.Label) != "" {
		return o.Label
	}
	return o.Value
}

// Field describes one form control and the rules its value must satisfy.
type Field struct {
	Name        string                `json:"name" yaml:"name"`
	Label       string                `json:"label,omitempty" yaml:"label,omitempty"`
	Control     Control               `json:"control,omitempty" yaml:"control,omitempty"`
	Placeholder string                `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string                `json:"default,omitempty" yaml:"default,omitempty"`
	Constraint  validation.Constraint `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Options     []Option              `json:"options,omitempty" yaml:"options,omitempty"`
	Multiple    bool                  `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Searchable  bool                  `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	// ErrorMessage overrides the computed message whenever an error is shown.
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// EffectiveControl defaults an empty control to text.
func (f Field) EffectiveControl() Control {
	if f.Control == "" {
		return ControlText
	}
	return f.Control
}

// Kind is the validation kind of the field: an explicit constraint kind wins,
// otherwise the control decides.
func (f Field) Kind() validation.Kind {
	if f.Constraint.Kind != "" {
		return f.Constraint.Kind
	}
	return f.EffectiveControl().Kind()
}

// EffectiveConstraint is the constraint handed to the engine. Controls that
// only check required drop the other rules.
func (f Field) EffectiveConstraint() validation.Constraint {
	c := f.Constraint
	if !f.EffectiveControl().FullRules() {
		return validation.Constraint{Required: c.Required}
	}
	c.Kind = f.Kind()
	return c
}

// Hints returns the native input attributes for the field.
func (f Field) Hints() validation.InputHints {
	switch control := f.EffectiveControl(); control {
	case ControlPassword, ControlSearch:
		return validation.InputHints{Type: string(control)}
	default:
		return validation.HintsFor(f.Kind())
	}
}

// HasOption reports whether value is one of the declared options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// FilterOptions returns the options whose label contains term, ignoring case.
// An empty term returns every option.
func (f Field) FilterOptions(term string) []Option {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]Option(nil), f.Options...)
	}
	out := make([]Option, 0, len(f.Options))
	for _, opt := range f.Options {
		if strings.Contains(strings.ToLower(opt.Text()), term) {
			out = append(out, opt)
		}
	}
	return out
}

// Check reports whether the field declaration is usable.
func (f Field) Check() error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ErrFieldName
	}
	control := f.EffectiveControl()
	if !control.Valid() {
		return fmt.Errorf("%w %q on %s", ErrUnknownControl, f.Control, name)
	}
	if control.HasOptions() && len(f.Options) == 0 {
		return fmt.Errorf("%w on %s", ErrMissingOptions, name)
	}
	if err := f.Constraint.Check(); err != nil {
		return fmt.Errorf("field: %s: %w", name, err)
	}
	return nil
}

// Set is an ordered group of fields rendered as one form.
type Set struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Method string  `json:"method,omitempty" yaml:"method,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Check validates every field and rejects duplicate names.
func (s Set) Check() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if err := f.Check(); err != nil {
			return err
		}
		name := strings.TrimSpace(f.Name)
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%w %q", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Field finds a field by name.
func (s Set) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names lists field names in declaration order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// EffectiveMethod defaults the submit method to POST.
func (s Set) EffectiveMethod() string {
	method := strings.ToUpper(strings.TrimSpace(s.Method))
	if method == "" {
		return "POST"
	}
	return method
}
