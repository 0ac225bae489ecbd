package validation

import (
	"github.com/goliatone/go-formkit/internal/httpx"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

type GuardFunc = httpx.GuardFunc

type Options struct {
	RoutePath string
	// MaxBodyBytes caps the request body. Zero or negative falls back to
	// DefaultMaxBodyBytes.
	MaxBodyBytes  int64
	DefaultLocale string
	Guard         GuardFunc
	Translator    i18n.Translator
}

type OptionFn func(*Options)

const DefaultMaxBodyBytes int64 = 64 << 10

func DefaultOptions() Options {
	return Options{
		RoutePath:     "/api/validate",
		MaxBodyBytes:  DefaultMaxBodyBytes,
		DefaultLocale: i18n.DefaultLocale,
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
		opts.RoutePath = "/api/validate"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = i18n.DefaultLocale
	}
	if opts.Translator == nil {
		opts.Translator = i18n.Default()
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

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithDefaultLocale(locale string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLocale = locale
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
