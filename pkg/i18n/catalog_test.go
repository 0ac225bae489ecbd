package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

func TestDefault_BundlesEnglishAndSpanish(t *testing.T) {
	catalog := i18n.Default()

	if diff := cmp.Diff([]string{"en", "es"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	msg, err := catalog.Translate("en", "validation.required")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if msg != "field is required" {
		t.Fatalf("unexpected english message %q", msg)
	}

	msg, err = catalog.Translate("es", "validation.min_length", 3)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if msg != "La longitud mínima es de 3 caracteres" {
		t.Fatalf("unexpected spanish message %q", msg)
	}
}

func TestCatalog_ListsFlattenToIndexedKeys(t *testing.T) {
	msg, err := i18n.Default().Translate("es", "calendar.months.0")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if msg != "Ene" {
		t.Fatalf("expected Ene, got %q", msg)
	}
}

func TestCatalog_LocaleChain(t *testing.T) {
	catalog := i18n.NewCatalog("en")
	catalog.Add("en", map[string]string{"greeting": "Hello", "bye": "Bye"})
	catalog.Add("es", map[string]string{"greeting": "Hola"})

	cases := map[string]string{
		"es":    "Hola",
		"es-MX": "Hola",
		"ES_ar": "Hola",
		"fr":    "Hello",
		"":      "Hello",
	}
	for locale, want := range cases {
		got, err := catalog.Translate(locale, "greeting")
		if err != nil {
			t.Fatalf("%q: translate: %v", locale, err)
		}
		if got != want {
			t.Fatalf("%q: want %q, got %q", locale, want, got)
		}
	}

	got, err := catalog.Translate("es", "bye")
	if err != nil || got != "Bye" {
		t.Fatalf("expected fallback Bye, got %q (%v)", got, err)
	}

	if _, err := catalog.Translate("es", "missing"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestLoadFS_ParsesYAMLAndJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"bundles/en.yaml": {Data: []byte("form:\n  submit: Save\n")},
		"bundles/pt.json": {Data: []byte(`{"form":{"submit":"Salvar"}}`)},
		"bundles/README":  {Data: []byte("ignored")},
	}

	catalog, err := i18n.LoadFS(fsys, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "pt"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if got, _ := catalog.Translate("pt", "form.submit"); got != "Salvar" {
		t.Fatalf("expected Salvar, got %q", got)
	}
}

func TestLookup_Fallbacks(t *testing.T) {
	if got := i18n.Lookup(nil, "en", "k", "min %d", nil, 4); got != "min 4" {
		t.Fatalf("expected formatted fallback, got %q", got)
	}
	if got := i18n.Lookup(nil, "en", "k", "", nil); got != "k" {
		t.Fatalf("expected key when fallback empty, got %q", got)
	}

	var seen error
	got := i18n.Lookup(i18n.NewCatalog("en"), "en", "k", "fallback", func(_ string, key string, _ []any, err error) string {
		seen = err
		return "missing:" + key
	})
	if got != "missing:k" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if !errors.Is(seen, i18n.ErrMissingTranslation) {
		t.Fatalf("handler should receive ErrMissingTranslation, got %v", seen)
	}
}
