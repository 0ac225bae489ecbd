package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey selects the key used to read the locale when templates pass
	// a map or struct instead of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing i18n.MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
//
// localeSrc is a locale string or a value holding one under cfg.LocaleKey.
func TemplateI18nFuncs(t i18n.Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := resolveLocale(localeSrc, localeKey)
			if t == nil {
				return onMissing(locale, key, params, i18n.ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]string:
		return data[key]
	case map[string]any:
		if v, ok := data[key]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
		return ""
	}

	value := reflect.ValueOf(src)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return ""
	}
	// Struct fields are exported, so "locale" matches a Locale field.
	f := value.FieldByNameFunc(func(name string) bool {
		return strings.EqualFold(name, key)
	})
	if f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return ""
}
