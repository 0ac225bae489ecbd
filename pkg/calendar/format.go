package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout renders dates as dd/mm/yyyy.
	DateLayout = "02/01/2006"
	// Placeholder is shown while no date is selected.
	Placeholder = "dd/mm/yyyy"
)

// ErrDateFormat is returned when a value is not a dd/mm/yyyy date.
var ErrDateFormat = errors.New("calendar: invalid date format")

// FormatDate renders t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a dd/mm/yyyy value into a UTC date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrDateFormat)
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, value)
	}
	return t, nil
}
