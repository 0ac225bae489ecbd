package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formkit/pkg/render"
)

// MonthGrid draws a month as a seven-column table with the title on top.
func MonthGrid(view render.MonthView, theme Theme) string {
	rows := make([]string, 0, len(view.Weeks)+2)
	rows = append(rows, theme.Title.Render(view.Title))

	header := make([]string, 0, len(view.Weekdays))
	for _, name := range view.Weekdays {
		header = append(header, theme.Weekday.Render(name))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, week := range view.Weeks {
		if emptyWeek(week) {
			continue
		}
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, dayCell(day, theme))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func dayCell(day render.DayView, theme Theme) string {
	switch {
	case day.Empty:
		return theme.Day.Render("")
	case day.Selected:
		return theme.Selected.Render("[" + day.Label + "]")
	case day.Today:
		return theme.Today.Render(day.Label)
	default:
		return theme.Day.Render(day.Label)
	}
}

// emptyWeek reports trailing padding rows, which the terminal grid skips.
func emptyWeek(week []render.DayView) bool {
	for _, day := range week {
		if !day.Empty {
			return false
		}
	}
	return true
}

func indent(block, prefix string) string {
	if prefix == "" {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
