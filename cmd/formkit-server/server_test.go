package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logger"
)

func newTestServer(t *testing.T, vars map[string]string) *httptest.Server {
	t.Helper()
	cfg, err := config.FromMap(vars)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	handler, err := newServer(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestServer_DemoPage(t *testing.T) {
	server := newTestServer(t, nil)

	res, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	for _, want := range []string{
		`data-formkit-calendar="/api/calendar"`,
		`data-formkit-validate="/api/validate"`,
		`action="/contact"`,
		`enctype="multipart/form-data"`,
		`/assets/formkit/formkit-calendar.js`,
		`<title>Contact us</title>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
}

func TestServer_BasePathAndLocale(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"FORMKIT_BASE_PATH": "/forms",
		"FORMKIT_LOCALE":    "es",
	})

	res, err := http.Get(server.URL + "/forms/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, res)
	for _, want := range []string{`action="/forms/contact"`, `data-formkit-calendar="/forms/api/calendar"`, `lang="es"`, "Enviar"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}

	res, err = http.Get(server.URL + "/forms/?locale=en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if body := readBody(t, res); !strings.Contains(body, "Submit") {
		t.Fatalf("expected locale query to override the default")
	}
}

func TestServer_Components(t *testing.T) {
	server := newTestServer(t, nil)

	res, err := http.Get(server.URL + "/api/calendar?year=2024&month=1")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	var grid struct {
		Title string `json:"title"`
		Cells []*int `json:"cells"`
	}
	if err := json.NewDecoder(res.Body).Decode(&grid); err != nil {
		t.Fatalf("decode grid: %v", err)
	}
	res.Body.Close()
	if grid.Title != "Feb 2024" || len(grid.Cells) != 42 {
		t.Fatalf("unexpected grid %+v", grid)
	}

	res, err = http.Post(server.URL+"/api/validate", "application/json", strings.NewReader(`{"value":"a","constraint":{"minLength":2}}`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	var verdict struct {
		Valid bool   `json:"valid"`
		Rule  string `json:"rule"`
	}
	if err := json.NewDecoder(res.Body).Decode(&verdict); err != nil {
		t.Fatalf("decode verdict: %v", err)
	}
	res.Body.Close()
	if verdict.Valid || verdict.Rule != "minLength" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
}

func TestServer_Assets(t *testing.T) {
	server := newTestServer(t, nil)

	res, err := http.Get(server.URL + "/assets/formkit/formkit-calendar.js")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, res)
	if res.StatusCode != http.StatusOK || !strings.Contains(body, "data-formkit-calendar") {
		t.Fatalf("unexpected asset response %d", res.StatusCode)
	}
}

func TestServer_SubmitInvalid(t *testing.T) {
	server := newTestServer(t, nil)

	res, err := http.PostForm(server.URL+"/contact", url.Values{
		"name":  {"A"},
		"email": {"not-an-email"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := readBody(t, res)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", res.StatusCode)
	}
	for _, want := range []string{
		"minimum length is 2 characters",
		"invalid email",
		"You must accept the terms",
		`value="not-an-email"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
}

func TestServer_SubmitValid(t *testing.T) {
	server := newTestServer(t, nil)

	res, err := http.PostForm(server.URL+"/contact", url.Values{
		"name":  {"Ada Lovelace"},
		"email": {"ada@example.com"},
		"topic": {"support"},
		"terms": {"true"},
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := readBody(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d:\n%s", res.StatusCode, body)
	}
	if !strings.Contains(body, "Thanks, we received your message") {
		t.Fatalf("expected success toast in page")
	}
	if !strings.Contains(body, "ada@example.com") {
		t.Fatalf("expected submitted payload in page")
	}
}

func TestServer_Healthz(t *testing.T) {
	server := newTestServer(t, nil)

	res, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if body := readBody(t, res); res.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("unexpected health response %d %q", res.StatusCode, body)
	}
}
