package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-formkit/internal/httpx"
	pkgvalidation "github.com/goliatone/go-formkit/pkg/validation"
)

// StatusError pairs an error with the status a guard wants returned.
type StatusError = httpx.StatusError

// Request is the JSON body accepted by the handler. Checked and Count select
// the checked and count validation modes; when both are nil Value is
// validated as text.
type Request struct {
	Value      string                   `json:"value"`
	Checked    *bool                    `json:"checked,omitempty"`
	Count      *int                     `json:"count,omitempty"`
	Constraint pkgvalidation.Constraint `json:"constraint"`
	Locale     string                   `json:"locale,omitempty"`
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
	engine := pkgvalidation.NewEngine(
		pkgvalidation.WithLocale(opts.DefaultLocale),
		pkgvalidation.WithTranslator(opts.Translator),
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !httpx.AllowMethods(w, r, http.MethodPost) {
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				httpx.WriteGuardError(w, err)
				return
			}
		}

		req, err := decodeRequest(w, r, opts.MaxBodyBytes)
		if err != nil {
			code := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				code = http.StatusRequestEntityTooLarge
			}
			httpx.WriteError(w, code, err.Error())
			return
		}
		if err := req.Constraint.Check(); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		httpx.WriteJSON(w, r, http.StatusOK, Evaluate(engine, req))
	})
}

// Evaluate runs req against engine in the mode its fields select.
func Evaluate(engine *pkgvalidation.Engine, req Request) pkgvalidation.Verdict {
	if locale := strings.TrimSpace(req.Locale); locale != "" {
		engine = engine.WithLocale(locale)
	}
	switch {
	case req.Checked != nil:
		return engine.ValidateChecked(*req.Checked, req.Constraint)
	case req.Count != nil:
		return engine.ValidateCount(*req.Count, req.Constraint)
	default:
		return engine.Validate(req.Value, req.Constraint)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request, limit int64) (Request, error) {
	var req Request
	if r.Body == nil {
		return req, errors.New("validation: missing request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("validation: missing request body")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, fmt.Errorf("validation: decode request: %w", err)
	}
	if req.Count != nil && *req.Count < 0 {
		return req, errors.New("validation: count must not be negative")
	}
	return req, nil
}
