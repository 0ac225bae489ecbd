package validation

import (
	"fmt"

	"github.com/goliatone/go-formkit/internal/httpx"
)

// Mux is the minimal interface required to register a net/http handler.
type Mux = httpx.Mux

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return httpx.MountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the validation handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("validation: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := httpx.MountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}
