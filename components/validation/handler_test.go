package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgvalidation "github.com/goliatone/go-formkit/pkg/validation"
)

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, pkgvalidation.Verdict) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var verdict pkgvalidation.Verdict
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&verdict); err != nil {
			t.Fatalf("failed to decode verdict: %v", err)
		}
	}
	return rec, verdict
}

func TestNewHandler_Verdicts(t *testing.T) {
	h := NewHandler()

	cases := []struct {
		name string
		body string
		want pkgvalidation.Verdict
	}{
		{
			name: "required empty",
			body: `{"value":"","constraint":{"required":true}}`,
			want: pkgvalidation.Verdict{Message: "field is required", Rule: pkgvalidation.RuleRequired},
		},
		{
			name: "min length",
			body: `{"value":"ab","constraint":{"minLength":3}}`,
			want: pkgvalidation.Verdict{Message: "minimum length is 3 characters", Rule: pkgvalidation.RuleMinLength},
		},
		{
			name: "email",
			body: `{"value":"nope","constraint":{"kind":"email"}}`,
			want: pkgvalidation.Verdict{Message: "invalid email", Rule: pkgvalidation.RuleEmail},
		},
		{
			name: "valid",
			body: `{"value":"grace@example.com","constraint":{"required":true,"kind":"email"}}`,
			want: pkgvalidation.Verdict{Valid: true},
		},
		{
			name: "unchecked",
			body: `{"checked":false,"constraint":{"required":true}}`,
			want: pkgvalidation.Verdict{Message: "field is required", Rule: pkgvalidation.RuleRequired},
		},
		{
			name: "count",
			body: `{"count":2,"constraint":{"required":true}}`,
			want: pkgvalidation.Verdict{Valid: true},
		},
		{
			name: "spanish",
			body: `{"value":"","constraint":{"required":true},"locale":"es"}`,
			want: pkgvalidation.Verdict{Message: "Campo requerido", Rule: pkgvalidation.RuleRequired},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, got := post(t, h, tc.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("verdict mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewHandler_DefaultLocale(t *testing.T) {
	h := NewHandler(WithDefaultLocale("es"))

	_, got := post(t, h, `{"value":"","constraint":{"required":true}}`)
	if got.Message != "Campo requerido" {
		t.Fatalf("expected Spanish message, got %q", got.Message)
	}
}

func TestNewHandler_RejectsBadRequests(t *testing.T) {
	h := NewHandler(WithMaxBodyBytes(128))

	cases := map[string]struct {
		body string
		code int
	}{
		"empty":             {body: ``, code: http.StatusBadRequest},
		"malformed":         {body: `{"value":`, code: http.StatusBadRequest},
		"unknown field":     {body: `{"value":"a","pattern":".*"}`, code: http.StatusBadRequest},
		"inverted bounds":   {body: `{"value":"a","constraint":{"minLength":5,"maxLength":2}}`, code: http.StatusBadRequest},
		"unknown kind":      {body: `{"value":"a","constraint":{"kind":"phone"}}`, code: http.StatusBadRequest},
		"negative count":    {body: `{"count":-1,"constraint":{}}`, code: http.StatusBadRequest},
		"oversized payload": {body: `{"value":"` + strings.Repeat("x", 256) + `"}`, code: http.StatusRequestEntityTooLarge},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _ := post(t, h, tc.body)
			if rec.Code != tc.code {
				t.Fatalf("expected status %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Fatalf("expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestNewHandler_MethodAndGuard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/validate", nil)
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}

	guarded := NewHandler(WithGuard(func(r *http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	rec, _ = post(t, guarded, `{"value":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := New().RegisterRoutes(mux, "/forms")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/forms/api/validate" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(`{"value":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
