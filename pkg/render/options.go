package render

import (
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/pagination"
	"github.com/goliatone/go-formkit/pkg/toast"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the field set.
type RenderOptions struct {
	// Method overrides the method declared by the set. Verbs browsers cannot
	// submit (PUT, PATCH, DELETE) are sent as POST plus a hidden _method input.
	Method string
	// Values pre-populates controls keyed by field name. Strings, bools and
	// string slices are accepted; anything else is formatted with fmt.
	Values map[string]any
	// Errors surfaces server-side validation feedback. Keys may use the nested
	// shapes backends emit ("body.email", "fields[0].name"); they are mapped
	// onto field names and leftovers become form-level errors.
	Errors map[string][]string
	// Hidden adds hidden inputs such as CSRF tokens. See CSRFToken.
	Hidden map[string]string
	// Validate runs the engine over Values and shows every failing verdict, as
	// a submit attempt would.
	Validate bool

	// Locale phrases labels and engine messages.
	Locale string
	// Translator resolves label keys and engine messages. Nil keeps the
	// labels as declared and uses the bundled catalog for messages.
	Translator i18n.Translator
	// OnMissing is called for keys the translator cannot resolve.
	OnMissing i18n.MissingTranslationHandler
	// Engine overrides the validation engine. Locale and Translator are
	// ignored for messages when it is set.
	Engine *validation.Engine

	// Theme carries go-theme tokens, CSS variables and partial overrides.
	Theme *theme.RendererConfig

	// Month selects the calendar month shown by date controls. The zero value
	// follows the selected date or Today.
	Month *calendar.Cursor
	// Today marks the current day in calendar grids. Defaults to time.Now.
	Today time.Time

	// Toast is rendered as a notification next to the form.
	Toast *toast.Toast
	// Pager renders a pagination footer.
	Pager *pagination.Pager
}

func (o RenderOptions) engine() *validation.Engine {
	if o.Engine != nil {
		return o.Engine
	}
	opts := []validation.Option{}
	if o.Locale != "" {
		opts = append(opts, validation.WithLocale(o.Locale))
	}
	if o.Translator != nil {
		opts = append(opts, validation.WithTranslator(o.Translator))
	}
	if len(opts) == 0 {
		return validation.DefaultEngine()
	}
	return validation.NewEngine(opts...)
}

// EffectiveLocale returns Locale or the default locale.
func (o RenderOptions) EffectiveLocale() string {
	if o.Locale == "" {
		return i18n.DefaultLocale
	}
	return o.Locale
}

// ChromeTranslator phrases renderer chrome (buttons, calendar names). It falls
// back to the bundled catalog when no Translator is set.
func (o RenderOptions) ChromeTranslator() i18n.Translator {
	if o.Translator != nil {
		return o.Translator
	}
	return i18n.Default()
}

// Now returns Today, or the current time when unset.
func (o RenderOptions) Now() time.Time {
	return o.today()
}

func (o RenderOptions) today() time.Time {
	if o.Today.IsZero() {
		return time.Now()
	}
	return o.Today
}
