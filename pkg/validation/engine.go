package validation

import (
	"cmp"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// Rule names the check that produced a failing verdict.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "minLength"
	RuleMaxLength Rule = "maxLength"
	RuleEmail     Rule = "email"
)

// Message keys resolved through the engine translator.
const (
	MessageRequired  = "validation.required"
	MessageMinLength = "validation.min_length"
	MessageMaxLength = "validation.max_length"
	MessageEmail     = "validation.email"
)

var defaultMessages = map[string]string{
	MessageRequired:  "field is required",
	MessageMinLength: "minimum length is %d characters",
	MessageMaxLength: "maximum length is %d characters",
	MessageEmail:     "invalid email",
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isEmail applies emailPattern after rejecting any Unicode whitespace,
// byte order mark included. RE2's \s only covers ASCII, so NBSP or a vertical
// tab would otherwise pass.
func isEmail(value string) bool {
	if strings.IndexFunc(value, isEmailSpace) >= 0 {
		return false
	}
	return emailPattern.MatchString(value)
}

func isEmailSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Verdict is the outcome of one validation call. Valid is false exactly when
// Message is non-empty.
type Verdict struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Rule    Rule   `json:"rule,omitempty"`
}

// Pass is the verdict for a value that satisfies its constraint.
func Pass() Verdict {
	return Verdict{Valid: true}
}

// Fail builds a failing verdict. A blank message falls back to the rule name,
// and to "invalid" when the caller passes no rule either, so the verdict never
// reads as invalid without a message.
func Fail(rule Rule, message string) Verdict {
	message = strings.TrimSpace(message)
	if message == "" {
		message = cmp.Or(string(rule), "invalid")
	}
	return Verdict{Valid: false, Message: message, Rule: rule}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale selects the locale used for messages.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			e.locale = trimmed
		}
	}
}

// WithTranslator swaps the message catalog.
func WithTranslator(t i18n.Translator) Option {
	return func(e *Engine) {
		if t != nil {
			e.translator = t
		}
	}
}

// WithMissingTranslation routes missing message keys through fn.
func WithMissingTranslation(fn i18n.MissingTranslationHandler) Option {
	return func(e *Engine) {
		e.onMissing = fn
	}
}

// Engine evaluates values against constraints. It holds no per-call state and
// is safe for concurrent use; the locale and translator only affect how
// messages are phrased.
type Engine struct {
	locale     string
	translator i18n.Translator
	onMissing  i18n.MissingTranslationHandler
}

// NewEngine constructs an engine using the bundled catalog in English unless
// options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		locale:     i18n.DefaultLocale,
		translator: i18n.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Locale reports the locale messages are phrased in.
func (e *Engine) Locale() string {
	if e == nil {
		return i18n.DefaultLocale
	}
	return e.locale
}

// WithLocale returns a copy of the engine phrasing messages in locale.
func (e *Engine) WithLocale(locale string) *Engine {
	clone := *e.orDefault()
	WithLocale(locale)(&clone)
	return &clone
}

// Validate checks value against c. Checks run in a fixed order and stop at the
// first failure: required, minLength, maxLength, email. Numeric kinds are not
// re-checked here; hosts filter characters with FilterNumeric before values
// reach the engine.
func (e *Engine) Validate(value string, c Constraint) Verdict {
	e = e.orDefault()

	if value == "" {
		if c.Required {
			return Fail(RuleRequired, e.message(MessageRequired))
		}
		return Pass()
	}

	length := utf8.RuneCountInString(value)
	if c.MinLength != nil && length < *c.MinLength {
		return Fail(RuleMinLength, e.message(MessageMinLength, *c.MinLength))
	}
	if c.MaxLength != nil && length > *c.MaxLength {
		return Fail(RuleMaxLength, e.message(MessageMaxLength, *c.MaxLength))
	}
	if c.EffectiveKind() == KindEmail && !isEmail(value) {
		return Fail(RuleEmail, e.message(MessageEmail))
	}
	return Pass()
}

// ValidateChecked checks boolean-style fields (checkbox, radio). Only the
// required rule applies.
func (e *Engine) ValidateChecked(checked bool, c Constraint) Verdict {
	e = e.orDefault()
	if c.Required && !checked {
		return Fail(RuleRequired, e.message(MessageRequired))
	}
	return Pass()
}

// ValidateCount checks collection-style fields (file inputs, multi selects)
// by the number of selected items. Only the required rule applies.
func (e *Engine) ValidateCount(count int, c Constraint) Verdict {
	e = e.orDefault()
	if c.Required && count <= 0 {
		return Fail(RuleRequired, e.message(MessageRequired))
	}
	return Pass()
}

func (e *Engine) message(key string, args ...any) string {
	return i18n.Lookup(e.translator, e.locale, key, defaultMessages[key], e.onMissing, args...)
}

func (e *Engine) orDefault() *Engine {
	if e == nil {
		return DefaultEngine()
	}
	return e
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

// DefaultEngine returns the shared English engine used by the package-level
// helpers.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// Validate checks value against c using the default engine.
func Validate(value string, c Constraint) Verdict {
	return DefaultEngine().Validate(value, c)
}

// ValidateChecked checks a boolean-style value using the default engine.
func ValidateChecked(checked bool, c Constraint) Verdict {
	return DefaultEngine().ValidateChecked(checked, c)
}

// ValidateCount checks a collection size using the default engine.
func ValidateCount(count int, c Constraint) Verdict {
	return DefaultEngine().ValidateCount(count, c)
}
