package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/render"
)

func TestMonthGrid(t *testing.T) {
	selected := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	view := render.NewMonthView(calendar.NewCursor(2024, 1), &selected, today, "en", i18n.Default())

	out := MonthGrid(view, DefaultTheme())
	lines := strings.Split(out, "\n")

	// title, weekday header and the five weeks February 2024 spans
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Feb 2024") {
		t.Fatalf("expected title, got %q", lines[0])
	}
	for _, name := range []string{"Su", "Mo", "Sa"} {
		if !strings.Contains(lines[1], name) {
			t.Fatalf("expected weekday %s in %q", name, lines[1])
		}
	}
	if !strings.Contains(lines[1+5], "[29]") {
		t.Fatalf("expected selected day in last week, got %q", lines[6])
	}
	if !strings.HasSuffix(strings.TrimRight(lines[2], " "), "3") {
		t.Fatalf("first week should end on the 3rd, got %q", lines[2])
	}
}

func TestMonthGrid_Spanish(t *testing.T) {
	view := render.NewMonthView(calendar.NewCursor(2024, 0), nil, today, "es", i18n.Default())
	out := MonthGrid(view, DefaultTheme())
	if !strings.Contains(out, "Do") || !strings.Contains(out, "2024") {
		t.Fatalf("expected spanish weekdays, got:\n%s", out)
	}
}
