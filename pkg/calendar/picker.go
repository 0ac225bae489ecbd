package calendar

import (
	"fmt"
	"time"
)

// View is the panel a picker shows.
type View string

const (
	ViewDate  View = "date"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// Picker holds the navigation state of a date picker: the month on screen,
// the active view and the selected date. Picker is not safe for concurrent
// use; each host interaction owns one.
type Picker struct {
	Cursor   Cursor     `json:"cursor"`
	View     View       `json:"view"`
	Selected *time.Time `json:"selected,omitempty"`
	Open     bool       `json:"open"`
}

// NewPicker starts on the selected date's month, or on today's month when
// nothing is selected.
func NewPicker(selected *time.Time, today time.Time) *Picker {
	p := &Picker{View: ViewDate, Cursor: CursorFor(today)}
	if selected != nil {
		t := *selected
		p.Selected = &t
		p.Cursor = CursorFor(t)
	}
	return p
}

// Show opens the popup.
func (p *Picker) Show() { p.Open = true }

// Hide closes the popup without changing the selection.
func (p *Picker) Hide() { p.Open = false }

// Prev moves backwards by the step of the active view: one month, one year
// or one page of years.
func (p *Picker) Prev() {
	switch p.View {
	case ViewMonth:
		p.Cursor = p.Cursor.PrevYear()
	case ViewYear:
		p.Cursor = p.Cursor.PrevYearPage()
	default:
		p.Cursor = p.Cursor.PrevMonth()
	}
}

// Next moves forwards by the step of the active view.
func (p *Picker) Next() {
	switch p.View {
	case ViewMonth:
		p.Cursor = p.Cursor.NextYear()
	case ViewYear:
		p.Cursor = p.Cursor.NextYearPage()
	default:
		p.Cursor = p.Cursor.NextMonth()
	}
}

// ZoomOut handles a click on the header label. Date and month views jump to
// the year list; the year view has no coarser level.
func (p *Picker) ZoomOut() {
	if p.View != ViewYear {
		p.View = ViewYear
	}
}

// PickYear moves to year and shows the month list.
func (p *Picker) PickYear(year int) {
	p.Cursor = p.Cursor.WithYear(year)
	p.View = ViewMonth
}

// PickMonth moves to month (0-based) and shows the day grid.
func (p *Picker) PickMonth(month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("%w: %d", ErrMonthRange, month)
	}
	p.Cursor = p.Cursor.WithMonth(month)
	p.View = ViewDate
	return nil
}

// PickDay selects day of the cursor month and closes the popup.
func (p *Picker) PickDay(day int) (time.Time, error) {
	if day < 1 || day > DaysInMonth(p.Cursor.Year, p.Cursor.Month) {
		return time.Time{}, fmt.Errorf("calendar: day %d not in %04d-%02d", day, p.Cursor.Year, p.Cursor.Month+1)
	}
	t := p.Cursor.Date(day)
	p.Selected = &t
	p.Open = false
	return t, nil
}

// Clear drops the selection.
func (p *Picker) Clear() {
	p.Selected = nil
}

// IsSelected reports whether day of the cursor month is the selected date.
func (p *Picker) IsSelected(day int) bool {
	if p.Selected == nil || day <= 0 {
		return false
	}
	return p.Cursor.Contains(*p.Selected) && p.Selected.Day() == day
}

// Value is the formatted selection, or "" when nothing is selected.
func (p *Picker) Value() string {
	if p.Selected == nil {
		return ""
	}
	return FormatDate(*p.Selected)
}

// Grid returns the day grid for the cursor month.
func (p *Picker) Grid() MonthGrid {
	return p.Cursor.Grid()
}

// YearPage returns the years the year view lists.
func (p *Picker) YearPage() []int {
	return p.Cursor.YearPage()
}
