package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

// Translation keys looked up for each set and field. The %s placeholders are
// the set id and the field name.
const (
	setTitleKey          = "forms.%s.title"
	fieldLabelKey        = "fields.%s.label"
	fieldPlaceholderKey  = "fields.%s.placeholder"
	fieldDescriptionKey  = "fields.%s.description"
	fieldErrorMessageKey = "fields.%s.error"
	fieldOptionKey       = "fields.%s.options.%s"
)

// LocalizeSet translates the copy of set in place: the title, each field's
// label, placeholder, description, error override and option labels. Keys the
// translator does not know keep their declared text. Without a translator the
// set is left untouched.
func LocalizeSet(set *field.Set, opts RenderOptions) {
	if set == nil || opts.Translator == nil {
		return
	}
	l := localizer{locale: opts.Locale, t: opts.Translator, onMissing: opts.OnMissing}

	if set.ID != "" {
		set.Title = l.text(keyf(setTitleKey, set.ID), set.Title)
	}

	fields := make([]field.Field, len(set.Fields))
	copy(fields, set.Fields)
	for i := range fields {
		f := &fields[i]
		f.Label = l.text(keyf(fieldLabelKey, f.Name), f.Label)
		f.Placeholder = l.text(keyf(fieldPlaceholderKey, f.Name), f.Placeholder)
		f.Description = l.text(keyf(fieldDescriptionKey, f.Name), f.Description)
		f.ErrorMessage = l.text(keyf(fieldErrorMessageKey, f.Name), f.ErrorMessage)

		if len(f.Options) > 0 {
			options := make([]field.Option, len(f.Options))
			for j, opt := range f.Options {
				opt.Label = l.text(keyf(fieldOptionKey, f.Name, opt.Value), opt.Label)
				options[j] = opt
			}
			f.Options = options
		}
	}
	set.Fields = fields
}

type localizer struct {
	locale    string
	t         i18n.Translator
	onMissing i18n.MissingTranslationHandler
}

func (l localizer) text(key, fallback string) string {
	msg, err := l.t.Translate(l.locale, key)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	if l.onMissing != nil && strings.TrimSpace(fallback) != "" {
		return l.onMissing(l.locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	return fallback
}

func keyf(format string, parts ...string) string {
	args := make([]any, len(parts))
	for i, part := range parts {
		args[i] = strings.TrimSpace(part)
	}
	return fmt.Sprintf(format, args...)
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if fallback, ok := m["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}
