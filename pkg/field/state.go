package field

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// State tracks one field across host interactions: the current value, the
// latest verdict and whether the error is on display. Each event (change,
// blur, invalid) re-runs the engine and returns the fresh verdict.
//
// State is not safe for concurrent use.
type State struct {
	Field   Field
	Value   string
	Checked bool
	Items   []string
	Touched bool
	Dirty   bool

	engine    *validation.Engine
	verdict   validation.Verdict
	showError bool
	server    []string
}

// NewState seeds the state from the field default. A nil engine uses the
// package default.
func NewState(f Field, engine *validation.Engine) *State {
	s := &State{Field: f, engine: engine}
	s.Reset()
	return s
}

// Mode is how the state feeds the engine. Multi-selects are counted.
func (s *State) Mode() Mode {
	if s.Field.EffectiveControl() == ControlSelect && s.Field.Multiple {
		return ModeCount
	}
	return s.Field.EffectiveControl().Mode()
}

// Reset restores the default value and clears every flag.
func (s *State) Reset() {
	s.Value = ""
	s.Checked = false
	s.Items = nil
	s.Touched = false
	s.Dirty = false
	s.showError = false
	s.server = nil
	s.verdict = validation.Pass()

	def := s.Field.Default
	switch s.Mode() {
	case ModeChecked:
		s.Checked, _ = strconv.ParseBool(strings.TrimSpace(def))
	case ModeCount:
		if def != "" {
			s.Items = splitItems(def)
		}
	default:
		s.Value = s.normalize(def)
	}
}

// Change applies a keystroke-level update: numeric filtering and maxLength
// truncation first, then validation. The resulting error is shown at once.
func (s *State) Change(raw string) validation.Verdict {
	s.Value = s.normalize(raw)
	s.Dirty = true
	s.server = nil
	return s.evaluate(true)
}

// SetChecked updates a checkbox.
func (s *State) SetChecked(checked bool) validation.Verdict {
	s.Checked = checked
	s.Dirty = true
	s.server = nil
	return s.evaluate(true)
}

// SetItems replaces the selected files or options.
func (s *State) SetItems(items []string) validation.Verdict {
	s.Items = compactItems(items)
	s.Dirty = true
	s.server = nil
	return s.evaluate(true)
}

// Blur marks the field touched and re-validates the current value.
func (s *State) Blur() validation.Verdict {
	s.Touched = true
	return s.evaluate(true)
}

// Invalid is the submit-time check. It always reveals the outcome.
func (s *State) Invalid() validation.Verdict {
	return s.evaluate(true)
}

// Check validates without changing what is on display.
func (s *State) Check() validation.Verdict {
	return s.evaluate(false)
}

// Verdict returns the latest engine outcome.
func (s *State) Verdict() validation.Verdict {
	return s.verdict
}

// HasError reports whether an error is on display.
func (s *State) HasError() bool {
	if len(s.server) > 0 {
		return true
	}
	return s.showError && !s.verdict.Valid
}

// Message is the text shown under the control. The field's ErrorMessage
// override wins over both server and computed messages.
func (s *State) Message() string {
	if !s.HasError() {
		return ""
	}
	if override := strings.TrimSpace(s.Field.ErrorMessage); override != "" {
		return override
	}
	if len(s.server) > 0 {
		return s.server[0]
	}
	return s.verdict.Message
}

// SetServerErrors shows messages reported by a backend until the value
// changes again.
func (s *State) SetServerErrors(messages []string) {
	s.server = normalizeMessages(messages)
}

// ServerErrors returns the backend messages currently attached.
func (s *State) ServerErrors() []string {
	return append([]string(nil), s.server...)
}

// Submitted is the value placed in a submission payload: a string, a bool
// for checkboxes or a string slice for collections.
func (s *State) Submitted() any {
	switch s.Mode() {
	case ModeChecked:
		return s.Checked
	case ModeCount:
		return append([]string(nil), s.Items...)
	default:
		return s.Value
	}
}

func (s *State) evaluate(show bool) validation.Verdict {
	c := s.Field.EffectiveConstraint()
	switch s.Mode() {
	case ModeChecked:
		s.verdict = s.engine.ValidateChecked(s.Checked, c)
	case ModeCount:
		s.verdict = s.engine.ValidateCount(len(s.Items), c)
	default:
		s.verdict = s.engine.Validate(s.Value, c)
	}
	if show {
		s.showError = !s.verdict.Valid
	}
	return s.verdict
}

func (s *State) normalize(raw string) string {
	if !s.Field.EffectiveControl().FullRules() {
		return raw
	}
	c := s.Field.EffectiveConstraint()
	value := validation.FilterNumeric(raw, c.EffectiveKind())
	return validation.Truncate(value, c)
}

func splitItems(raw string) []string {
	return compactItems(strings.Split(raw, ","))
}

func compactItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
