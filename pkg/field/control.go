package field

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Control identifies the widget a field renders as.
type Control string

const (
	ControlText     Control = "text"
	ControlEmail    Control = "email"
	ControlPassword Control = "password"
	ControlNumber   Control = "number"
	ControlDecimal  Control = "decimal"
	ControlSearch   Control = "search"
	ControlTextarea Control = "textarea"
	ControlCheckbox Control = "checkbox"
	ControlRadio    Control = "radio"
	ControlSelect   Control = "select"
	ControlFile     Control = "file"
	ControlDate     Control = "date"
)

// Mode is how a control feeds the validation engine.
type Mode int

const (
	// ModeValue validates the typed or selected string.
	ModeValue Mode = iota
	// ModeChecked validates a checked flag.
	ModeChecked
	// ModeCount validates the number of selected items.
	ModeCount
)

var knownControls = map[Control]struct{}{
	ControlText: {}, ControlEmail: {}, ControlPassword: {}, ControlNumber: {},
	ControlDecimal: {}, ControlSearch: {}, ControlTextarea: {}, ControlCheckbox: {},
	ControlRadio: {}, ControlSelect: {}, ControlFile: {}, ControlDate: {},
}

// Controls lists every supported control in a stable order.
func Controls() []Control {
	return []Control{
		ControlText, ControlEmail, ControlPassword, ControlNumber, ControlDecimal,
		ControlSearch, ControlTextarea, ControlCheckbox, ControlRadio, ControlSelect,
		ControlFile, ControlDate,
	}
}

// ParseControl normalises raw into a known control.
func ParseControl(raw string) (Control, bool) {
	c := Control(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return ControlText, true
	}
	_, ok := knownControls[c]
	return c, ok
}

// Valid reports whether c is a known control.
func (c Control) Valid() bool {
	_, ok := knownControls[c]
	return ok
}

// Kind maps the control onto the validation kind it implies.
func (c Control) Kind() validation.Kind {
	switch c {
	case ControlEmail:
		return validation.KindEmail
	case ControlNumber:
		return validation.KindNumber
	case ControlDecimal:
		return validation.KindDecimal
	default:
		return validation.KindText
	}
}

// Mode reports how values of the control are validated.
func (c Control) Mode() Mode {
	switch c {
	case ControlCheckbox:
		return ModeChecked
	case ControlFile:
		return ModeCount
	default:
		return ModeValue
	}
}

// FullRules reports whether the control applies length and shape rules on top
// of required. Choice, file, date and search controls only check required.
func (c Control) FullRules() bool {
	switch c {
	case ControlText, ControlEmail, ControlPassword, ControlNumber, ControlDecimal, ControlTextarea, "":
		return true
	default:
		return false
	}
}

// HasOptions reports whether the control picks from a fixed option list.
func (c Control) HasOptions() bool {
	return c == ControlRadio || c == ControlSelect
}
