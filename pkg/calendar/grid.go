package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// DaysPerWeek is the number of columns in a month grid.
	DaysPerWeek = 7
	// WeeksPerGrid is the number of rows in a month grid.
	WeeksPerGrid = 6
	// GridSize is the fixed cell count of every month grid.
	GridSize = DaysPerWeek * WeeksPerGrid
)

// ErrMonthRange is returned by strict builders when month is outside 0..11.
var ErrMonthRange = errors.New("calendar: month out of range")

// Cell is one slot of a month grid: a day number 1..31, or the zero value for
// an empty slot. Empty cells encode as JSON null.
type Cell int

// Empty reports whether the cell holds no day.
func (c Cell) Empty() bool {
	return c <= 0
}

// Day returns the day number, or 0 for an empty cell.
func (c Cell) Day() int {
	if c.Empty() {
		return 0
	}
	return int(c)
}

func (c Cell) String() string {
	if c.Empty() {
		return ""
	}
	return strconv.Itoa(int(c))
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Empty() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(c))), nil
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("calendar: decode cell: %w", err)
	}
	if n < 0 || n > 31 {
		return fmt.Errorf("calendar: decode cell: day %d out of range", n)
	}
	*c = Cell(n)
	return nil
}

// MonthGrid lays out one month as six Sunday-first weeks in row-major order.
type MonthGrid [GridSize]Cell

// Cells returns the grid as a slice.
func (g MonthGrid) Cells() []Cell {
	out := make([]Cell, GridSize)
	copy(out, g[:])
	return out
}

// Weeks splits the grid into its six rows.
func (g MonthGrid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, WeeksPerGrid)
	for row := 0; row < WeeksPerGrid; row++ {
		week := make([]Cell, DaysPerWeek)
		copy(week, g[row*DaysPerWeek:(row+1)*DaysPerWeek])
		weeks = append(weeks, week)
	}
	return weeks
}

// Days counts the non-empty cells.
func (g MonthGrid) Days() int {
	n := 0
	for _, cell := range g {
		if !cell.Empty() {
			n++
		}
	}
	return n
}

// Leading is the number of empty cells before day 1, which equals the
// weekday of the first of the month.
func (g MonthGrid) Leading() int {
	for idx, cell := range g {
		if !cell.Empty() {
			return idx
		}
	}
	return GridSize
}

// BuildMonthGrid returns the grid for month (0-based) of year. Months outside
// 0..11 roll over into neighbouring years, so month 12 of 2023 is January 2024.
func BuildMonthGrid(year, month int) MonthGrid {
	year, month = normalize(year, month)

	var grid MonthGrid
	first := FirstWeekday(year, month)
	days := DaysInMonth(year, month)
	for day := 1; day <= days; day++ {
		grid[first+day-1] = Cell(day)
	}
	return grid
}

// BuildMonthGridStrict is BuildMonthGrid without rollover.
func BuildMonthGridStrict(year, month int) (MonthGrid, error) {
	if month < 0 || month > 11 {
		return MonthGrid{}, fmt.Errorf("%w: %d", ErrMonthRange, month)
	}
	return BuildMonthGrid(year, month), nil
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month (0-based) in year.
func DaysInMonth(year, month int) int {
	year, month = normalize(year, month)
	switch time.Month(month + 1) {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// FirstWeekday returns the weekday (0 = Sunday) of the first day of month.
func FirstWeekday(year, month int) int {
	year, month = normalize(year, month)
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

func normalize(year, month int) (int, int) {
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return year, month
}
