package calendar

import (
	"time"

	"github.com/goliatone/go-formkit/internal/httpx"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

type GuardFunc = httpx.GuardFunc

type Options struct {
	RoutePath   string
	YearParam   string
	MonthParam  string
	LocaleParam string
	// Rollover accepts months outside 0..11 and normalises them into the
	// neighbouring years. By default such months are rejected with 400.
	Rollover   bool
	Guard      GuardFunc
	Translator i18n.Translator
	Now        func() time.Time
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/api/calendar",
		YearParam:   "year",
		MonthParam:  "month",
		LocaleParam: "locale",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/calendar"
	}
	if opts.YearParam == "" {
		opts.YearParam = "year"
	}
	if opts.MonthParam == "" {
		opts.MonthParam = "month"
	}
	if opts.LocaleParam == "" {
		opts.LocaleParam = "locale"
	}
	if opts.Translator == nil {
		opts.Translator = i18n.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithParams(year, month string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.YearParam = year
		o.MonthParam = month
	}
}

func WithRollover(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Rollover = enabled
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithTranslator(t i18n.Translator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Translator = t
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}
