package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/render"
)

const templatePrefix = "templates/components/"

// CalendarStylesheet and CalendarScript are the assets the date component
// needs. They are served from vanilla.AssetsFS.
const (
	CalendarStylesheet = "formkit-calendar.css"
	CalendarScript     = "formkit-calendar.js"
)

// NewDefaultRegistry returns a registry with one component per control
// family, each backed by an embedded template.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("forms.input", templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer("forms.textarea", templatePrefix+"textarea.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("forms.select", templatePrefix+"select.tmpl"),
	})
	registry.MustRegister(NameRadio, Descriptor{
		Renderer: templateComponentRenderer("forms.radio", templatePrefix+"radio.tmpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer("forms.checkbox", templatePrefix+"checkbox.tmpl"),
	})
	registry.MustRegister(NameFile, Descriptor{
		Renderer: templateComponentRenderer("forms.file", templatePrefix+"file.tmpl"),
	})
	registry.MustRegister(NameDate, Descriptor{
		Renderer:    templateComponentRenderer("forms.date", templatePrefix+"date.tmpl"),
		Stylesheets: []string{CalendarStylesheet},
		Scripts:     []Script{{Src: CalendarScript, Defer: true}},
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"field":             field,
			"selectPlaceholder": data.SelectPlaceholder,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
