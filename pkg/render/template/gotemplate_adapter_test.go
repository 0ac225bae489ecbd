package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tmpl":      {Data: []byte(`Hello {{ name }}!`)},
	"use-global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
	"use-filter.tmpl": {Data: []byte(`{{ name|shout_gotemplate_test }}`)},
	"numbers.tmpl":    {Data: []byte(`{% for cell in cells %}[{{ cell.day }}]{% endfor %} max={{ max }}`)},
	"classes.tmpl":    {Data: []byte(`{{ "fk-field"|classnames:"invalid required" }}`)},
	"call-func.tmpl":  {Data: []byte(`{{ greet(name) }}`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output %q / %q", result, written)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("{{ greeting }}, {{ name }}", struct {
		Greeting string `json:"greeting"`
		Name     string `json:"name"`
	}{"Hola", "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Hola, Ada" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}
	if err := engine.RegisterFilter("shout_gotemplate_test", shout); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout_gotemplate_test", shout); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_NumbersPrintAsIntegers(t *testing.T) {
	engine := newEngine(t)
	type cell struct {
		Day int `json:"day"`
	}
	got, err := engine.RenderTemplate("numbers", map[string]any{
		"cells": []cell{{1}, {31}},
		"max":   40,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[1][31] max=40" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_ClassNamesFilter(t *testing.T) {
	got, err := newEngine(t).RenderTemplate("classes", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "fk-field fk-field--invalid fk-field--required" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_TemplateFuncs(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithTemplateFunc(map[string]any{
			"greet": func(name string) string { return "hi " + name },
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.RenderTemplate("call-func", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "hi Ada" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithTemplateFunc(map[string]any{"greet": "not a func"}),
	); err == nil {
		t.Fatalf("expected error for non-function helper")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
