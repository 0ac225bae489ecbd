package components

import "github.com/goliatone/go-formkit/pkg/field"

// Component names used by the default registry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameRadio    = "radio"
	NameCheckbox = "checkbox"
	NameFile     = "file"
	NameDate     = "date"
)

// NameFor maps a field control onto the component that draws it. Every
// single-line text control shares the input component.
func NameFor(control string) string {
	switch field.Control(control) {
	case field.ControlTextarea:
		return NameTextarea
	case field.ControlSelect:
		return NameSelect
	case field.ControlRadio:
		return NameRadio
	case field.ControlCheckbox:
		return NameCheckbox
	case field.ControlFile:
		return NameFile
	case field.ControlDate:
		return NameDate
	default:
		return NameInput
	}
}
