package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches OpenAPI documents from files, an fs.FS or HTTP.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources. Loading is offline
// unless HTTP is enabled explicitly.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS sources.
	FileSystem fs.FS

	// HTTPClient serves SourceKindURL sources. Nil disables HTTP unless
	// AllowHTTP is set.
	HTTPClient *http.Client

	// AllowHTTP enables HTTP with a default client when HTTPClient is nil.
	AllowHTTP bool

	// RequestTimeout caps remote fetches.
	RequestTimeout time.Duration

	// MaxBytes caps how much of a document is read. Zero means no limit.
	MaxBytes int64
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects the client used for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTP enables URL sources using a default client with timeout.
func WithHTTP(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// WithMaxBytes caps document size.
func WithMaxBytes(n int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxBytes = n
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
