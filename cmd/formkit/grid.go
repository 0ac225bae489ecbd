package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	calendarcomponent "github.com/goliatone/go-formkit/components/calendar"
	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

type gridOptions struct {
	year     string
	month    string
	date     string
	rollover bool
	json     bool
}

func newGridCmd(a *app) *cobra.Command {
	opts := &gridOptions{}

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the calendar grid of a month",
		Example: `  formkit grid --year 2024 --month 1
  formkit grid --date 29/02/2024 --locale es
  formkit grid --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.year, "year", "", "Year (defaults to the current year)")
	cmd.Flags().StringVar(&opts.month, "month", "", "Month, 0-based (defaults to the current month)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Highlight a date ("+calendar.Placeholder+"); its month is shown unless --month is set")
	cmd.Flags().BoolVar(&opts.rollover, "rollover", false, "Accept months outside 0..11 and roll into neighbouring years")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the grid as JSON")

	return cmd
}

func runGrid(cmd *cobra.Command, a *app, opts *gridOptions) error {
	var selected *time.Time
	year, month := opts.year, opts.month
	if opts.date != "" {
		parsed, err := calendar.ParseDate(opts.date)
		if err != nil {
			return err
		}
		selected = &parsed
		if year == "" && month == "" {
			year = fmt.Sprint(parsed.Year())
			month = fmt.Sprint(int(parsed.Month()) - 1)
		}
	}

	componentOpts := calendarcomponent.NewOptions(
		calendarcomponent.WithRollover(opts.rollover),
		calendarcomponent.WithClock(a.now),
	)
	grid, err := calendarcomponent.Build(componentOpts, year, month, a.locale)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(grid)
	}

	cursor := calendar.NewCursor(grid.Year, grid.Month)
	view := render.NewMonthView(cursor, selected, a.now(), a.locale, i18n.Default())
	_, err = fmt.Fprintln(out, tui.MonthGrid(view, tui.DefaultTheme()))
	return err
}
