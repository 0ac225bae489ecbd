package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Kind selects the value shape a field expects.
type Kind string

const (
	KindText    Kind = "text"
	KindEmail   Kind = "email"
	KindNumber  Kind = "number"
	KindDecimal Kind = "decimal"
)

// Numeric reports whether the kind is filtered to digits at the input layer.
func (k Kind) Numeric() bool {
	return k == KindNumber || k == KindDecimal
}

// Constraint is the declarative rule set for one field. The zero value has no
// rules and accepts every value. Bounds are pointers so an unset bound is
// distinguishable from zero.
type Constraint struct {
	Required  bool `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty" validate:"omitempty,gte=0"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"omitempty,gte=0"`
	Kind      Kind `json:"kind,omitempty" yaml:"kind,omitempty" validate:"omitempty,oneof=text email number decimal"`
}

// ConstraintOption mutates a constraint under construction.
type ConstraintOption func(*Constraint)

// New builds a constraint from options.
func New(opts ...ConstraintOption) Constraint {
	var c Constraint
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&c)
	}
	return c
}

func WithRequired() ConstraintOption {
	return func(c *Constraint) { c.Required = true }
}

func WithMinLength(n int) ConstraintOption {
	return func(c *Constraint) { c.MinLength = &n }
}

func WithMaxLength(n int) ConstraintOption {
	return func(c *Constraint) { c.MaxLength = &n }
}

func WithKind(kind Kind) ConstraintOption {
	return func(c *Constraint) { c.Kind = kind }
}

// EffectiveKind returns the constraint kind, defaulting to KindText.
func (c Constraint) EffectiveKind() Kind {
	if c.Kind == "" {
		return KindText
	}
	return c.Kind
}

// IsZero reports whether the constraint carries no rules at all.
func (c Constraint) IsZero() bool {
	return !c.Required && c.MinLength == nil && c.MaxLength == nil && c.EffectiveKind() == KindText
}

// ConstraintError describes why a constraint set is malformed.
type ConstraintError struct {
	Field string
	Rule  string
	Err   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("validation: constraint %s failed %q", e.Field, e.Rule)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterStructValidation(func(sl validator.StructLevel) {
			c, ok := sl.Current().Interface().(Constraint)
			if !ok || c.MinLength == nil || c.MaxLength == nil {
				return
			}
			if *c.MinLength > *c.MaxLength {
				sl.ReportError(c.MaxLength, "MaxLength", "maxLength", "gtemin", "")
			}
		}, Constraint{})
		validateInst = v
	})
	return validateInst
}

// Check reports whether the constraint set itself is well formed: bounds are
// non-negative, minLength does not exceed maxLength and the kind is known.
// Validate does not require a checked constraint; Check exists for loaders
// that accept constraint sets from configuration.
func (c Constraint) Check() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ConstraintError{
			Field: lowerFirst(fe.Field()),
			Rule:  fe.Tag(),
			Err:   err,
		}
	}
	return &ConstraintError{Field: "constraint", Rule: "invalid", Err: err}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
