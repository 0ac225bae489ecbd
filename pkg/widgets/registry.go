package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/field"
)

// ExtensionControl is the schema extension that pins a control explicitly.
const ExtensionControl = "x-formkit-control"

// Hint summarises what a schema says about a property: enough to pick the
// control that should edit it.
type Hint struct {
	Name       string
	Type       string
	Format     string
	Enum       []string
	MaxLength  *int
	Items      *Hint
	Extensions map[string]string
}

// Matcher decides whether a control should handle the hinted property.
type Matcher func(h Hint) bool

type rule struct {
	control  field.Control
	priority int
	match    Matcher
	order    int
}

// Registry picks controls for schema properties based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. Properties nothing matches render as text.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for control with the provided priority. Higher
// priority values take precedence.
func (r *Registry) Register(control field.Control, priority int, matcher Matcher) {
	if r == nil || matcher == nil || !control.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		control:  control,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the control for a property. A valid x-formkit-control
// extension is honoured before matcher evaluation.
func (r *Registry) Resolve(h Hint) field.Control {
	if explicit, ok := explicitControl(h); ok {
		return explicit
	}
	if r == nil {
		return field.ControlText
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(h) {
			return entry.control
		}
	}
	return field.ControlText
}

// Decorate fills the Control of every field in set that does not declare one,
// using hints for the field names.
func (r *Registry) Decorate(set *field.Set, hints map[string]Hint) {
	if set == nil {
		return
	}
	for idx, f := range set.Fields {
		if f.Control != "" {
			continue
		}
		h, ok := hints[f.Name]
		if !ok {
			h = Hint{Name: f.Name}
		}
		set.Fields[idx].Control = r.Resolve(h)
	}
}

func explicitControl(h Hint) (field.Control, bool) {
	if h.Extensions == nil {
		return "", false
	}
	raw := strings.TrimSpace(h.Extensions[ExtensionControl])
	if raw == "" {
		return "", false
	}
	control, ok := field.ParseControl(raw)
	return control, ok
}

func (r *Registry) registerBuiltins() {
	r.Register(field.ControlCheckbox, 90, func(h Hint) bool {
		return h.Type == "boolean"
	})

	r.Register(field.ControlFile, 85, func(h Hint) bool {
		if h.Type == "string" && (h.Format == "binary" || h.Format == "base64") {
			return true
		}
		return h.Type == "array" && h.Items != nil && h.Items.Type == "string" && h.Items.Format == "binary"
	})

	r.Register(field.ControlRadio, 80, func(h Hint) bool {
		return h.Type != "array" && len(h.Enum) > 0 && len(h.Enum) <= 3
	})

	r.Register(field.ControlSelect, 70, func(h Hint) bool {
		if len(h.Enum) > 0 {
			return true
		}
		return h.Type == "array" && h.Items != nil && len(h.Items.Enum) > 0
	})

	r.Register(field.ControlDate, 60, func(h Hint) bool {
		return h.Type == "string" && (h.Format == "date" || h.Format == "date-time")
	})

	r.Register(field.ControlEmail, 55, func(h Hint) bool {
		return h.Type == "string" && h.Format == "email"
	})

	r.Register(field.ControlPassword, 50, func(h Hint) bool {
		if h.Type != "string" {
			return false
		}
		if h.Format == "password" {
			return true
		}
		name := strings.ToLower(h.Name)
		return strings.Contains(name, "password") || strings.Contains(name, "secret")
	})

	r.Register(field.ControlNumber, 45, func(h Hint) bool {
		return h.Type == "integer"
	})

	r.Register(field.ControlDecimal, 40, func(h Hint) bool {
		return h.Type == "number"
	})

	r.Register(field.ControlTextarea, 30, func(h Hint) bool {
		if h.Type != "string" {
			return false
		}
		return h.MaxLength != nil && *h.MaxLength > 255
	})
}
