// Package calendar builds the fixed 42-cell month grid used by date pickers
// and the navigation state around it.
//
// Months are 0-based (0 = January) and weeks start on Sunday. Arithmetic on
// a Cursor rolls over year boundaries; BuildMonthGrid applies the same
// rollover, while BuildMonthGridStrict rejects months outside 0..11.
package calendar
