package calendar

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/forms"); got != "/forms/api/calendar" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("forms/", WithRoutePath("cal")); got != "/forms/cal" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_ServeMuxAndChi(t *testing.T) {
	routers := map[string]Mux{
		"servemux": http.NewServeMux(),
		"chi":      chi.NewRouter(),
	}
	for name, mux := range routers {
		t.Run(name, func(t *testing.T) {
			pattern, err := New(WithClock(fixedClock)).RegisterRoutes(mux, "/forms")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if pattern != "/forms/api/calendar" {
				t.Fatalf("unexpected registered pattern: %q", pattern)
			}

			req := httptest.NewRequest(http.MethodGet, pattern+"?year=2024&month=1", nil)
			rec := httptest.NewRecorder()
			mux.(http.Handler).ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
		})
	}
}

func TestRegisterRoutes_NilMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
