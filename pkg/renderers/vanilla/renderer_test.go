package vanilla_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/pagination"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/toast"
)

var today = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func renderContact(t *testing.T, opts render.RenderOptions, options ...vanilla.Option) string {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if opts.Today.IsZero() {
		opts.Today = today
	}
	out, err := renderer.Render(testsupport.Context(), testsupport.ContactSet(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_RendersEveryControl(t *testing.T) {
	html := renderContact(t, render.RenderOptions{})

	assertContains(t, html,
		`<form id="contact" class="fk-form" action="/contact" method="POST" enctype="multipart/form-data" lang="en" novalidate>`,
		`<h2>Contact us</h2>`,
		`<input id="fk-name" name="name" type="text" value="" placeholder="Jane Doe" required minlength="2" maxlength="40" data-control="text">`,
		`<input id="fk-email" name="email" type="email" value="" required data-control="email">`,
		`step="1" min="0" inputmode="numeric"`,
		`step="0.01" min="0" inputmode="decimal"`,
		`<select id="fk-topic" name="topic" required data-searchable="true">`,
		`<option value="">Select an option</option>`,
		`<option value="support">Technical support</option>`,
		`<textarea id="fk-message" name="message" rows="4" maxlength="500"></textarea>`,
		`placeholder="dd/mm/yyyy"`,
		`<input id="fk-attachment" name="attachment" type="file">`,
		`<input id="fk-terms" name="terms" type="checkbox" value="true" required>`,
		`<button type="submit">Submit</button>`,
		`href="/assets/formkit/formkit-calendar.css"`,
		`src="/assets/formkit/formkit-calendar.js" defer`,
	)
	assertNotContains(t, html, `aria-invalid`, `fk-error`, `<script>alert`)
}

func TestRenderer_SanitizesDescriptions(t *testing.T) {
	html := renderContact(t, render.RenderOptions{})
	assertContains(t, html, `Tell us <b>what</b> happened.`)
	assertNotContains(t, html, `alert(1)`)
}

func TestRenderer_CalendarGrid(t *testing.T) {
	html := renderContact(t, render.RenderOptions{Values: map[string]any{"birthday": "29/02/2024"}})
	assertContains(t, html,
		`data-year="2024" data-month="1"`,
		`>Feb 2024</button>`,
		`<th scope="col">Su</th>`,
		`data-date="29/02/2024" aria-pressed="true" class="fk-day fk-day--selected">29</button>`,
		`data-nav="prev" data-year="2024" data-month="0"`,
		`data-nav="next" data-year="2024" data-month="2"`,
	)
}

func TestRenderer_ShowsErrorsAndPrefill(t *testing.T) {
	html := renderContact(t, render.RenderOptions{
		Method:   "put",
		Hidden:   map[string]string{"_csrf": "tok"},
		Values:   map[string]any{"name": "Ada <3", "topic": "billing", "terms": false},
		Errors:   map[string][]string{"form": {"Service unavailable"}},
		Validate: true,
	})

	assertContains(t, html,
		`method="POST"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_method" value="PUT">`,
		`value="Ada &lt;3"`,
		`<option value="billing" selected>Billing</option>`,
		`<div class="fk-errors" role="alert"><ul><li>Service unavailable</li></ul></div>`,
		`<p class="fk-error" id="fk-email-error" role="alert">field is required</p>`,
		`<p class="fk-error" id="fk-terms-error" role="alert">You must accept the terms</p>`,
		`class="fk-field fk-field--checkbox fk-field--invalid"`,
	)
	assertNotContains(t, html, `id="fk-name-error"`)
}

func TestRenderer_ToastPagerAndTheme(t *testing.T) {
	tst := toast.Toast{ID: "t-1", Message: "Saved", Type: toast.TypeSuccess, Position: toast.TopCenter, Duration: 2 * time.Second}
	pager := pagination.New(45, 20)

	html := renderContact(t, render.RenderOptions{
		Toast: &tst,
		Pager: &pager,
		Theme: &theme.RendererConfig{
			Theme:    "acme",
			Variant:  "dark",
			CSSVars:  map[string]string{"--fk-accent": "#123456"},
			AssetURL: func(name string) string { return "/themes/acme/" + name },
		},
	}, vanilla.WithStylesheet("/assets/site.css"))

	assertContains(t, html,
		`<link rel="stylesheet" href="/assets/site.css">`,
		`<link rel="stylesheet" href="/themes/acme/formkit-calendar.css">`,
		`--fk-accent: #123456;`,
		`data-theme="acme" data-variant="dark"`,
		`class="fk-toast fk-toast--success fk-toast--top-center"`,
		`data-duration="2000"`,
		`<script src="/themes/acme/formkit-toast.js" defer></script>`,
		`<span class="fk-pager__text">Pages: 1 of 3</span>`,
		`<option value="20" selected>20</option>`,
	)
}

func TestRenderer_SpanishChrome(t *testing.T) {
	html := renderContact(t, render.RenderOptions{Locale: "es", Validate: true})
	assertContains(t, html,
		`lang="es"`,
		`<button type="submit">Enviar</button>`,
		`<option value="">Selecciona una opción</option>`,
		`placeholder="dd/mm/aaaa"`,
		`>Campo requerido</p>`,
	)
}

func TestRenderer_DefaultStyles(t *testing.T) {
	html := renderContact(t, render.RenderOptions{}, vanilla.WithDefaultStyles())
	assertContains(t, html, `<style>.fk-form {`)
}

func TestRenderer_ChromeClasses(t *testing.T) {
	html := renderContact(t, render.RenderOptions{}, vanilla.WithChromeClasses(vanilla.ChromeClasses{Form: "my-form"}))
	assertContains(t, html, `class="my-form"`, `class="fk-actions"`)
}

func TestRenderer_HonoursContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, testsupport.ContactSet(t), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, _ any, _ ...io.Writer) (string, error) {
			if name == "templates/form.tmpl" {
				return "custom-output", nil
			}
			return "<component />", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), testsupport.ContactSet(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if !stub.called {
		t.Fatalf("expected render template to be called")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.ToastScriptName, "formkit-calendar.js", "formkit-calendar.css"} {
		if _, err := fs.Stat(vanilla.AssetsFS(), name); err != nil {
			t.Fatalf("expected asset %s: %v", name, err)
		}
	}
}

type stubTemplateRenderer struct {
	called             bool
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.called = true
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}
