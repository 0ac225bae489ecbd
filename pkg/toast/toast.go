package toast

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the visual intent of a toast.
type Type string

const (
	TypeSuccess   Type = "success"
	TypeError     Type = "error"
	TypeInfo      Type = "info"
	TypeWarning   Type = "warning"
	TypePrimary   Type = "primary"
	TypeSecondary Type = "secondary"
)

// Types lists every toast type.
func Types() []Type {
	return []Type{TypeSuccess, TypeError, TypeInfo, TypeWarning, TypePrimary, TypeSecondary}
}

// ParseType normalises raw into a known type.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("toast: unknown type %q", raw)
}

// Position is the screen corner or edge a toast is anchored to.
type Position string

const (
	TopRight     Position = "top-right"
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	BottomRight  Position = "bottom-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
)

// DefaultPosition is used when Show receives no position.
const DefaultPosition = BottomRight

// DefaultDuration is how long a toast stays up unless told otherwise.
const DefaultDuration = 3 * time.Second

// Positions lists every position.
func Positions() []Position {
	return []Position{TopRight, TopLeft, TopCenter, BottomRight, BottomLeft, BottomCenter}
}

// ParsePosition normalises raw into a known position. Empty input yields the
// default position.
func ParsePosition(raw string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return DefaultPosition, nil
	}
	for _, known := range Positions() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("toast: unknown position %q", raw)
}

// Toast is one notification.
type Toast struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Type     Type          `json:"type"`
	Position Position      `json:"position"`
	Duration time.Duration `json:"duration"`
	Created  time.Time     `json:"created"`
}

// Sticky reports whether the toast waits for an explicit Hide.
func (t Toast) Sticky() bool {
	return t.Duration <= 0
}

// ShowOption customises a single Show call.
type ShowOption func(*Toast)

// At anchors the toast to position.
func At(position Position) ShowOption {
	return func(t *Toast) {
		if position != "" {
			t.Position = position
		}
	}
}

// For overrides the display duration. Zero or negative keeps the toast up
// until Hide is called.
func For(d time.Duration) ShowOption {
	return func(t *Toast) {
		t.Duration = d
	}
}

func newToast(message string, kind Type, now time.Time, duration time.Duration) Toast {
	if kind == "" {
		kind = TypeInfo
	}
	return Toast{
		ID:       uuid.NewString(),
		Message:  strings.TrimSpace(message),
		Type:     kind,
		Position: DefaultPosition,
		Duration: duration,
		Created:  now,
	}
}
