package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
)

// Renderer writes the control markup for one field into buf. The label,
// description and error chrome around it belong to the form template.
type Renderer func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error

// ComponentData carries helpers and per-form copy for component renderers.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Partials maps partial keys ("forms.input") to replacement templates,
	// usually from the go-theme renderer config.
	Partials map[string]string
	// SelectPlaceholder labels the empty choice of single selects.
	SelectPlaceholder string
}

// Script is a JavaScript dependency emitted once per render. A Src without a
// slash is an asset name and gets the renderer's asset prefix.
type Script struct {
	Src    string
	Type   string
	Async  bool
	Defer  bool
	Module bool
}

// Descriptor is a component: how it draws and which assets it pulls in.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

// Registry maps component names to descriptors. Names are either control
// families (NameInput, NameDate, ...) or single controls ("password"), the
// latter overriding the family when a form is drawn.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone returns a copy that can be changed without touching r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register stores descriptor under name, replacing any previous entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister is Register for default registry setup.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by exact name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Resolve picks the component that draws a field control: a descriptor
// registered for the control itself wins over its family.
func (r *Registry) Resolve(control string) (Descriptor, bool) {
	if key := normalize(control); key != "" {
		if descriptor, ok := r.Descriptor(key); ok {
			return descriptor, true
		}
	}
	return r.Descriptor(NameFor(control))
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets collects the stylesheets and scripts of the named components in
// order, each at most once. Unknown names are skipped.
func (r *Registry) Assets(names []string) (stylesheets []string, scripts []Script) {
	if len(names) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href != "" && !slices.Contains(stylesheets, href) {
				stylesheets = append(stylesheets, href)
			}
		}
		for _, script := range descriptor.Scripts {
			if !slices.ContainsFunc(scripts, func(s Script) bool { return s.Src == script.Src }) {
				scripts = append(scripts, script)
			}
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
