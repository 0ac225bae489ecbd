package calendar

import "time"

// YearPageSize is how many years the year view lists at once.
const YearPageSize = 12

// yearPageLead is how many years before the cursor year a page starts.
const yearPageLead = 5

// Cursor is the month a calendar is showing. Month is 0-based. Every method
// returns a normalised cursor, so arithmetic rolls over year boundaries.
type Cursor struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewCursor returns a normalised cursor.
func NewCursor(year, month int) Cursor {
	year, month = normalize(year, month)
	return Cursor{Year: year, Month: month}
}

// CursorFor returns the cursor for the month containing t.
func CursorFor(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: int(t.Month()) - 1}
}

func (c Cursor) AddMonths(n int) Cursor {
	return NewCursor(c.Year, c.Month+n)
}

func (c Cursor) AddYears(n int) Cursor {
	return NewCursor(c.Year+n, c.Month)
}

func (c Cursor) PrevMonth() Cursor { return c.AddMonths(-1) }
func (c Cursor) NextMonth() Cursor { return c.AddMonths(1) }
func (c Cursor) PrevYear() Cursor  { return c.AddYears(-1) }
func (c Cursor) NextYear() Cursor  { return c.AddYears(1) }

func (c Cursor) PrevYearPage() Cursor { return c.AddYears(-YearPageSize) }
func (c Cursor) NextYearPage() Cursor { return c.AddYears(YearPageSize) }

// WithMonth keeps the year and jumps to month.
func (c Cursor) WithMonth(month int) Cursor {
	return NewCursor(c.Year, month)
}

// WithYear keeps the month and jumps to year.
func (c Cursor) WithYear(year int) Cursor {
	return NewCursor(year, c.Month)
}

// YearPage lists the years shown by the year view: five before the cursor
// year through six after it.
func (c Cursor) YearPage() []int {
	c = NewCursor(c.Year, c.Month)
	years := make([]int, YearPageSize)
	for i := range years {
		years[i] = c.Year - yearPageLead + i
	}
	return years
}

// Grid builds the month grid the cursor points at.
func (c Cursor) Grid() MonthGrid {
	return BuildMonthGrid(c.Year, c.Month)
}

// Date returns day of the cursor month as a UTC time.
func (c Cursor) Date(day int) time.Time {
	c = NewCursor(c.Year, c.Month)
	return time.Date(c.Year, time.Month(c.Month+1), day, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls in the cursor month.
func (c Cursor) Contains(t time.Time) bool {
	return CursorFor(t) == NewCursor(c.Year, c.Month)
}
