package render

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// MethodOverrideField carries the real verb when a form is posted on behalf
// of PUT, PATCH or DELETE.
const MethodOverrideField = "_method"

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds the hidden field carrying a CSRF token. The input name
// must match what the backend reads ("_csrf", "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, f := range fields {
		if f.Name = strings.TrimSpace(f.Name); f.Name != "" {
			out[f.Name] = f.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

// ResolveMethod maps a declared method onto what an HTML form can submit.
// GET and POST pass through; other verbs become POST with an override value
// for MethodOverrideField.
func ResolveMethod(method string) (formMethod, override string) {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case "":
		return http.MethodPost, ""
	case http.MethodGet, http.MethodPost:
		return method, ""
	default:
		return http.MethodPost, method
	}
}
