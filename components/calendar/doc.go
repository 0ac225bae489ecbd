// Package calendar serves month grids over HTTP so date pickers can page
// through months without reloading the form.
//
// GET {RoutePath}?year=2024&month=1 answers with the grid of February 2024:
//
//	{"year":2024,"month":1,"title":"Feb 2024","weekdays":["Su",...],"cells":[null,null,null,null,1,2,...]}
//
// Months are 0-based. Cells always hold 42 entries, Sunday first, with null
// for padding. Missing parameters default to the current month.
package calendar
