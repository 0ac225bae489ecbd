package render

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

// MonthView is a month grid ready for display.
type MonthView struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	MonthName string      `json:"monthName"`
	Title     string      `json:"title"`
	Weekdays  []string    `json:"weekdays"`
	Weeks     [][]DayView `json:"weeks"`
	Prev      CursorView  `json:"prev"`
	Next      CursorView  `json:"next"`
	YearPage  []int       `json:"yearPage"`
	YearRange string      `json:"yearRange"`
	Months    []string    `json:"months"`
}

// CursorView points at a neighbouring month.
type CursorView struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DayView is one cell of the grid. Empty cells carry no day.
type DayView struct {
	Day      int    `json:"day"`
	Label    string `json:"label"`
	Date     string `json:"date,omitempty"`
	Empty    bool   `json:"empty"`
	Selected bool   `json:"selected"`
	Today    bool   `json:"today"`
}

// NewMonthView lays out the month under cursor. selected and today mark the
// matching cells; month and weekday names come from the translator.
func NewMonthView(cursor calendar.Cursor, selected *time.Time, today time.Time, locale string, t i18n.Translator) MonthView {
	cursor = calendar.NewCursor(cursor.Year, cursor.Month)
	names := monthNames(locale, t)
	grid := cursor.Grid()

	view := MonthView{
		Year:      cursor.Year,
		Month:     cursor.Month,
		MonthName: names[cursor.Month],
		Weekdays:  weekdayNames(locale, t),
		Prev:      cursorView(cursor.PrevMonth()),
		Next:      cursorView(cursor.NextMonth()),
		YearPage:  cursor.YearPage(),
		Months:    names,
	}
	view.Title = i18n.Lookup(t, locale, "calendar.title", "%s %d", nil, view.MonthName, cursor.Year)
	first, last := view.YearPage[0], view.YearPage[len(view.YearPage)-1]
	view.YearRange = i18n.Lookup(t, locale, "calendar.year_range", "%d - %d", nil, first, last)

	view.Weeks = make([][]DayView, 0, calendar.WeeksPerGrid)
	for _, week := range grid.Weeks() {
		row := make([]DayView, 0, calendar.DaysPerWeek)
		for _, cell := range week {
			row = append(row, dayView(cursor, cell, selected, today))
		}
		view.Weeks = append(view.Weeks, row)
	}
	return view
}

func dayView(cursor calendar.Cursor, cell calendar.Cell, selected *time.Time, today time.Time) DayView {
	if cell.Empty() {
		return DayView{Empty: true}
	}
	date := cursor.Date(cell.Day())
	return DayView{
		Day:      cell.Day(),
		Label:    cell.String(),
		Date:     calendar.FormatDate(date),
		Selected: selected != nil && sameDay(*selected, date),
		Today:    !today.IsZero() && sameDay(today, date),
	}
}

func cursorView(c calendar.Cursor) CursorView {
	return CursorView{Year: c.Year, Month: c.Month}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func monthNames(locale string, t i18n.Translator) []string {
	out := make([]string, 12)
	for i := range out {
		fallback := time.Month(i + 1).String()[:3]
		out[i] = i18n.Lookup(t, locale, fmt.Sprintf("calendar.months.%d", i), fallback, nil)
	}
	return out
}

func weekdayNames(locale string, t i18n.Translator) []string {
	out := make([]string, calendar.DaysPerWeek)
	for i := range out {
		fallback := time.Weekday(i).String()[:2]
		out[i] = i18n.Lookup(t, locale, fmt.Sprintf("calendar.weekdays.%d", i), fallback, nil)
	}
	return out
}
