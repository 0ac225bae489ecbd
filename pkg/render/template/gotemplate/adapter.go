package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formkit/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	funcs     map[string]any
}

// WithFS loads templates from files. It is required.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc exposes helpers to every template. pongo2 filter
// functions are registered as filters; other functions become globals
// callable as {{ t("key") }}.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				cfg.funcs[name] = fn
			}
		}
	}
}

// Engine satisfies template.TemplateRenderer with a pongo2 template set.
// Parsed files are cached by path.
type Engine struct {
	mu     sync.RWMutex
	set    *pongo2.TemplateSet
	cache  map[string]*pongo2.Template
	tplExt string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine over the configured file system.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		return nil, errors.New("gotemplate: template fs.FS is required")
	}

	registerDefaultFilters()
	engine := &Engine{
		set:    pongo2.NewSet("formkit", pongo2.NewFSLoader(cfg.templates)),
		cache:  make(map[string]*pongo2.Template),
		tplExt: cfg.extension,
	}
	engine.set.Globals = make(pongo2.Context)

	for name, fn := range cfg.funcs {
		if filter, ok := fn.(pongo2.FilterFunction); ok {
			if !pongo2.FilterExists(name) {
				if err := pongo2.RegisterFilter(name, filter); err != nil {
					return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
				}
			}
			continue
		}
		if reflect.ValueOf(fn).Kind() != reflect.Func {
			return nil, fmt.Errorf("gotemplate: template func %q is %T, not a function", name, fn)
		}
		engine.set.Globals[name] = fn
	}
	return engine, nil
}

// Render treats name as inline source when it contains pongo2 delimiters
// and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a file, appending the extension when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.tplExt) {
		path += e.tplExt
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, "template "+path, out)
}

// RenderString parses and renders inline source. Inline templates are not
// cached.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out)
}

// RegisterFilter registers a pongo2 filter. Filters are process-wide in
// pongo2, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the globals every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	ctx, err := viewContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global context: %w", err)
	}
	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	ctx, err := viewContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// viewContext turns render data into a pongo2 context. Views such as
// render.FormView and render.MonthView are decoded through their JSON tags,
// so templates address fields as {{ field.minLength }}; numbers stay
// json.Number and print as 40 rather than 40.000000. Function values of a
// top-level map are passed through untouched so they remain callable.
func viewContext(data any) (pongo2.Context, error) {
	ctx := pongo2.Context{}
	switch v := data.(type) {
	case nil:
		return ctx, nil
	case pongo2.Context:
		return viewContext(map[string]any(v))
	case map[string]any:
		for key, value := range v {
			if key = strings.TrimSpace(key); key == "" {
				continue
			}
			if value != nil && reflect.ValueOf(value).Kind() == reflect.Func {
				ctx[key] = value
				continue
			}
			var decoded any
			if err := decodeJSON(value, &decoded); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			ctx[key] = decoded
		}
		return ctx, nil
	default:
		var decoded map[string]any
		if err := decodeJSON(v, &decoded); err != nil {
			return nil, err
		}
		for key, value := range decoded {
			ctx[key] = value
		}
		return ctx, nil
	}
}

func decodeJSON(v any, dest any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(dest)
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("classnames") {
		_ = pongo2.RegisterFilter("classnames", filterClassNames)
	}
}

// filterClassNames joins a base class with modifier suffixes:
// {{ "fk-field"|classnames:"invalid" }} renders "fk-field fk-field--invalid".
func filterClassNames(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	base := strings.TrimSpace(in.String())
	if base == "" {
		return pongo2.AsValue(""), nil
	}
	classes := []string{base}
	if param != nil {
		for _, modifier := range strings.Fields(param.String()) {
			classes = append(classes, base+"--"+modifier)
		}
	}
	return pongo2.AsValue(strings.Join(classes, " ")), nil
}
