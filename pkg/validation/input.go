package validation

import (
	"strings"
	"unicode/utf8"
)

// InputHints are the native attributes a renderer should set for a kind.
type InputHints struct {
	Type string
	Step string
	Min  string
}

// HintsFor mirrors the attributes number and decimal inputs carry: integer
// steps for numbers, cents for decimals, and no negative values.
func HintsFor(kind Kind) InputHints {
	switch kind {
	case KindNumber:
		return InputHints{Type: "number", Step: "1", Min: "0"}
	case KindDecimal:
		return InputHints{Type: "number", Step: "0.01", Min: "0"}
	case KindEmail:
		return InputHints{Type: "email"}
	default:
		return InputHints{Type: "text"}
	}
}

// Length counts value in code points, the unit used for length rules.
func Length(value string) int {
	return utf8.RuneCountInString(value)
}

// Truncate hard-limits value to the constraint's maxLength as it is typed.
func Truncate(value string, c Constraint) string {
	if c.MaxLength == nil {
		return value
	}
	limit := *c.MaxLength
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(value) <= limit {
		return value
	}

	count := 0
	for idx := range value {
		if count == limit {
			return value[:idx]
		}
		count++
	}
	return value
}

// AcceptsRune reports whether a keystroke is allowed for kind. Numeric kinds
// reject the minus sign.
func AcceptsRune(r rune, kind Kind) bool {
	if kind.Numeric() && r == '-' {
		return false
	}
	return true
}

// FilterNumeric reduces raw to the character set a numeric kind accepts:
// digits for numbers, digits plus one decimal point for decimals. Other kinds
// pass through untouched.
func FilterNumeric(raw string, kind Kind) string {
	if !kind.Numeric() {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && kind == KindDecimal && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}
