package vanilla

// ChromeClass is a semantic CSS class applied to form chrome.
type ChromeClass string

const (
	ClassForm    ChromeClass = "fk-form"
	ClassHeader  ChromeClass = "fk-header"
	ClassField   ChromeClass = "fk-field"
	ClassActions ChromeClass = "fk-actions"
	ClassErrors  ChromeClass = "fk-errors"
)

// ChromeClasses overrides the class applied to each chrome element. Empty
// values keep the default.
type ChromeClasses struct {
	Form    string `json:"form"`
	Header  string `json:"header"`
	Field   string `json:"field"`
	Actions string `json:"actions"`
	Errors  string `json:"errors"`
}

func (c ChromeClasses) withDefaults() ChromeClasses {
	if c.Form == "" {
		c.Form = string(ClassForm)
	}
	if c.Header == "" {
		c.Header = string(ClassHeader)
	}
	if c.Field == "" {
		c.Field = string(ClassField)
	}
	if c.Actions == "" {
		c.Actions = string(ClassActions)
	}
	if c.Errors == "" {
		c.Errors = string(ClassErrors)
	}
	return c
}
