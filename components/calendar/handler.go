package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/internal/httpx"
	pkgcalendar "github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/render"
)

// StatusError pairs an error with the status a guard wants returned.
type StatusError = httpx.StatusError

// Grid is the JSON body of a month.
type Grid struct {
	Year     int                `json:"year"`
	Month    int                `json:"month"`
	Title    string             `json:"title"`
	Weekdays []string           `json:"weekdays"`
	Cells    []pkgcalendar.Cell `json:"cells"`
	Today    int                `json:"today,omitempty"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// NewHandler is an alias for Handler.
func NewHandler(fns ...OptionFn) http.Handler {
	return Handler(fns...)
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !httpx.AllowMethods(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				httpx.WriteGuardError(w, err)
				return
			}
		}

		query := r.URL.Query()
		locale := strings.TrimSpace(query.Get(opts.LocaleParam))
		if locale == "" {
			locale = i18n.DefaultLocale
		}

		grid, err := Build(opts, query.Get(opts.YearParam), query.Get(opts.MonthParam), locale)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, grid)
	})
}

// Build resolves the raw year and month parameters into a Grid. Empty
// parameters fall back to the current month.
func Build(opts Options, rawYear, rawMonth, locale string) (Grid, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	today := opts.Now()
	cursor := pkgcalendar.CursorFor(today)

	year, err := parseParam(opts.YearParam, rawYear, cursor.Year)
	if err != nil {
		return Grid{}, err
	}
	month, err := parseParam(opts.MonthParam, rawMonth, cursor.Month)
	if err != nil {
		return Grid{}, err
	}

	if !opts.Rollover {
		if _, err := pkgcalendar.BuildMonthGridStrict(year, month); err != nil {
			return Grid{}, err
		}
	}
	cursor = pkgcalendar.NewCursor(year, month)

	view := render.NewMonthView(cursor, nil, today, locale, opts.Translator)
	grid := Grid{
		Year:     cursor.Year,
		Month:    cursor.Month,
		Title:    view.Title,
		Weekdays: view.Weekdays,
		Cells:    cursor.Grid().Cells(),
	}
	if cursor.Contains(today) {
		grid.Today = today.Day()
	}
	return grid, nil
}

var errBadParam = errors.New("calendar: invalid parameter")

func parseParam(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w %s=%q", errBadParam, name, raw)
	}
	return value, nil
}
