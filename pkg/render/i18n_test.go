package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizeSet_UsesKeysAndFallbacks(t *testing.T) {
	set := testsupport.ContactSet(t)
	original := set.Fields[0].Label

	render.LocalizeSet(&set, render.RenderOptions{
		Locale: "es",
		Translator: stubTranslator{
			"forms.contact.title":          "Contáctanos",
			"fields.name.label":            "Nombre",
			"fields.topic.options.billing": "Facturación",
		},
	})

	if set.Title != "Contáctanos" {
		t.Fatalf("expected translated title, got %q", set.Title)
	}
	name, _ := set.Field("name")
	if name.Label != "Nombre" || name.Placeholder != "Jane Doe" {
		t.Fatalf("unexpected name field %+v", name)
	}
	topic, _ := set.Field("topic")
	if topic.Options[2].Label != "Facturación" || topic.Options[0].Label != "Sales" {
		t.Fatalf("unexpected options %+v", topic.Options)
	}

	if fresh := testsupport.ContactSet(t); fresh.Fields[0].Label != original {
		t.Fatalf("fixture mutated")
	}
}

func TestLocalizeSet_NoTranslatorIsNoop(t *testing.T) {
	set := testsupport.ContactSet(t)
	render.LocalizeSet(&set, render.RenderOptions{Locale: "es"})
	if set.Title != "Contact us" {
		t.Fatalf("expected title untouched, got %q", set.Title)
	}
}

func TestLocalizeSet_OnMissing(t *testing.T) {
	set := testsupport.ContactSet(t)
	render.LocalizeSet(&set, render.RenderOptions{
		Translator: stubTranslator{},
		OnMissing: func(_ string, key string, _ []any, _ error) string {
			return "[" + key + "]"
		},
	})
	name, _ := set.Field("name")
	if name.Label != "[fields.name.label]" {
		t.Fatalf("expected missing handler output, got %q", name.Label)
	}
	if name.Description != "" {
		t.Fatalf("empty copy should stay empty, got %q", name.Description)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(stubTranslator{"hello": "hola"}, render.TemplateI18nConfig{FuncName: "t"})

	translate, ok := funcs["t"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("expected translate helper under custom name")
	}
	if got := translate("es", "hello"); got != "hola" {
		t.Fatalf("expected hola, got %q", got)
	}
	if got := translate("es", "missing"); got != "missing" {
		t.Fatalf("expected key fallback, got %q", got)
	}

	current := funcs["current_locale"].(func(any) string)
	if got := current(map[string]any{"locale": "es-MX"}); got != "es-MX" {
		t.Fatalf("unexpected locale from map %q", got)
	}
	if got := current(struct{ Locale string }{Locale: "fr"}); got != "fr" {
		t.Fatalf("unexpected locale from struct %q", got)
	}
	if got := current(nil); got != "" {
		t.Fatalf("expected empty locale, got %q", got)
	}
}
