package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// ErrUnknownField is returned when an event targets a name the form does not
// declare.
var ErrUnknownField = errors.New("field: unknown field")

// FormOption customises a Form.
type FormOption func(*Form)

// WithEngine sets the engine every field state validates with.
func WithEngine(engine *validation.Engine) FormOption {
	return func(f *Form) {
		f.engine = engine
	}
}

// WithDefaults overrides field defaults by name.
func WithDefaults(values map[string]string) FormOption {
	return func(f *Form) {
		for name, value := range values {
			f.defaults[name] = value
		}
	}
}

// Form owns the field states of one Set.
type Form struct {
	set        Set
	engine     *validation.Engine
	defaults   map[string]string
	states     map[string]*State
	formErrors []string
}

// Result is the outcome of a submit attempt.
type Result struct {
	Valid  bool              `json:"valid"`
	Values map[string]any    `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
}

// NewForm builds the states for every field of set.
func NewForm(set Set, opts ...FormOption) *Form {
	f := &Form{
		set:      set,
		defaults: make(map[string]string),
		states:   make(map[string]*State, len(set.Fields)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	for _, fld := range set.Fields {
		if value, ok := f.defaults[fld.Name]; ok {
			fld.Default = value
		}
		f.states[fld.Name] = NewState(fld, f.engine)
	}
	return f
}

// Set returns the field set the form was built from.
func (f *Form) Set() Set {
	return f.set
}

// State returns the state of name.
func (f *Form) State(name string) (*State, bool) {
	s, ok := f.states[name]
	return s, ok
}

// States lists states in declaration order.
func (f *Form) States() []*State {
	out := make([]*State, 0, len(f.set.Fields))
	for _, fld := range f.set.Fields {
		out = append(out, f.states[fld.Name])
	}
	return out
}

// Change routes a value update to name.
func (f *Form) Change(name, raw string) (validation.Verdict, error) {
	s, err := f.lookup(name)
	if err != nil {
		return validation.Verdict{}, err
	}
	f.formErrors = nil
	switch s.Mode() {
	case ModeChecked:
		return s.SetChecked(isTruthy(raw)), nil
	case ModeCount:
		return s.SetItems(splitItems(raw)), nil
	default:
		return s.Change(raw), nil
	}
}

// Blur routes a blur event to name.
func (f *Form) Blur(name string) (validation.Verdict, error) {
	s, err := f.lookup(name)
	if err != nil {
		return validation.Verdict{}, err
	}
	return s.Blur(), nil
}

// Bind loads submitted values (for example url.Values) into the states.
// Checkboxes are checked when present with a truthy value; collection fields
// take every value.
func (f *Form) Bind(values map[string][]string) {
	for _, fld := range f.set.Fields {
		s := f.states[fld.Name]
		raw, present := values[fld.Name]
		switch s.Mode() {
		case ModeChecked:
			s.Checked = present && len(raw) > 0 && isTruthy(raw[0])
		case ModeCount:
			s.Items = compactItems(raw)
		default:
			if len(raw) > 0 {
				s.Value = s.normalize(raw[0])
			} else {
				s.Value = ""
			}
		}
		s.Dirty = true
	}
}

// Submit reveals the verdict of every field. The values are returned even when
// the form is invalid so hosts can re-render what the user typed.
func (f *Form) Submit() Result {
	result := Result{Valid: true, Values: f.Values()}
	for _, fld := range f.set.Fields {
		s := f.states[fld.Name]
		s.Invalid()
		if s.HasError() {
			result.Valid = false
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			result.Errors[fld.Name] = s.Message()
		}
	}
	return result
}

// Values returns the submission payload keyed by field name.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.set.Fields))
	for _, fld := range f.set.Fields {
		out[fld.Name] = f.states[fld.Name].Submitted()
	}
	return out
}

// ApplyServerErrors attaches a backend payload to the matching fields and
// keeps the rest as form-level errors.
func (f *Form) ApplyServerErrors(payload map[string][]string) ErrorMapping {
	mapping := MapErrorPayload(f.set, payload)
	for name, messages := range mapping.Fields {
		if s, ok := f.states[name]; ok {
			s.SetServerErrors(messages)
		}
	}
	f.formErrors = MergeFormErrors(f.formErrors, mapping.Form...)
	return mapping
}

// FormErrors returns messages that apply to the whole form.
func (f *Form) FormErrors() []string {
	return append([]string(nil), f.formErrors...)
}

// Errors returns the message on display for each failing field.
func (f *Form) Errors() map[string]string {
	var out map[string]string
	for _, fld := range f.set.Fields {
		s := f.states[fld.Name]
		if !s.HasError() {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[fld.Name] = s.Message()
	}
	return out
}

// Reset restores every field to its default, as after a successful submit.
func (f *Form) Reset() {
	for _, s := range f.states {
		s.Reset()
	}
	f.formErrors = nil
}

func (f *Form) lookup(name string) (*State, error) {
	s, ok := f.states[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return s, nil
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "on", "yes", "y", "checked":
		return true
	default:
		return false
	}
}
