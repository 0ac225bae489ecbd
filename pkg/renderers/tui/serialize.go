package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

// flattenForm encodes values the way a browser submits them: repeated keys
// for collections and "true" for checked boxes. Unchecked boxes are omitted.
func flattenForm(values map[string]any) string {
	out := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				out.Add(key, item)
			}
		case []any:
			for _, item := range v {
				out.Add(key, fmt.Sprint(item))
			}
		case bool:
			if v {
				out.Set(key, "true")
			}
		case nil:
			out.Set(key, "")
		default:
			out.Set(key, fmt.Sprint(v))
		}
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		switch v := values[key].(type) {
		case []string:
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(v, ", "))
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	return b.String()
}
