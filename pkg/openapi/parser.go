package openapi

import "context"

// Parser turns a document into operations keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions tunes how strictly documents are parsed.
type ParserOptions struct {
	// Validate runs the kin-openapi document validator before extraction.
	Validate bool

	// AllowEmpty accepts documents without operations instead of failing.
	AllowEmpty bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithEmptyDocuments accepts documents that declare no operations.
func WithEmptyDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmpty = enabled
	}
}

// NewParserOptions applies options over the defaults: validation on, empty
// documents rejected.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
