package vanilla

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla/components"
)

// DefaultAssetPrefix is where hosts are expected to serve AssetsFS.
const DefaultAssetPrefix = "/assets/formkit/"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateFuncs    map[string]any
	registry         *components.Registry
	policy           *bluemonday.Policy
	classes          ChromeClasses
	inlineStyles     bool
	stylesheets      []string
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTemplateFuncs registers extra helpers on the built-in template engine,
// for example render.TemplateI18nFuncs.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if cfg.templateFuncs == nil {
			cfg.templateFuncs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFuncs[name] = fn
		}
	}
}

// WithComponentRegistry swaps the component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithSanitizer replaces the policy applied to field descriptions.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithChromeClasses overrides the classes of the form chrome.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithDefaultStyles inlines the bundled stylesheet into every render.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an extra stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithAssetPrefix sets the URL prefix component assets are linked under.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetPrefix = prefix
	}
}

// Renderer draws a field set as a plain HTML form with pongo2 templates.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	registry     *components.Registry
	policy       *bluemonday.Policy
	classes      ChromeClasses
	inlineStyles bool
	stylesheets  []string
	assetPrefix  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetPrefix: DefaultAssetPrefix}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		funcs := render.TemplateI18nFuncs(i18n.Default(), render.TemplateI18nConfig{})
		for name, fn := range cfg.templateFuncs {
			funcs[name] = fn
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(funcs),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	policy := cfg.policy
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}

	return &Renderer{
		templates:    templates,
		registry:     registry,
		policy:       policy,
		classes:      cfg.classes.withDefaults(),
		inlineStyles: cfg.inlineStyles,
		stylesheets:  slices.Clone(cfg.stylesheets),
		assetPrefix:  cfg.assetPrefix,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the form view and draws it: each field through its
// component, then the form chrome around them.
func (r *Renderer) Render(ctx context.Context, set field.Set, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := render.BuildView(set, opts)
	for i := range view.Fields {
		view.Fields[i].Description = r.sanitize(view.Fields[i].Description)
	}

	data := components.ComponentData{
		Template:          r.templates,
		Partials:          view.Theme.Partials,
		SelectPlaceholder: view.SelectPlaceholder,
	}

	used := make([]string, 0, len(view.Fields))
	fieldsHTML := make([]string, 0, len(view.Fields))
	for _, fv := range view.Fields {
		descriptor, ok := r.registry.Resolve(fv.Control)
		if !ok {
			return nil, fmt.Errorf("vanilla renderer: no component for control %q of field %q", fv.Control, fv.Name)
		}
		name := descriptor.Name

		var control bytes.Buffer
		if err := descriptor.Renderer(&control, fv, data); err != nil {
			return nil, fmt.Errorf("vanilla renderer: field %q: %w", fv.Name, err)
		}

		wrapped, err := r.templates.RenderTemplate("templates/field.tmpl", map[string]any{
			"field":   fv,
			"control": control.String(),
			"classes": r.classes,
		})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: field %q chrome: %w", fv.Name, err)
		}
		fieldsHTML = append(fieldsHTML, wrapped)
		if !slices.Contains(used, name) {
			used = append(used, name)
		}
	}

	extras, err := r.renderExtras(view)
	if err != nil {
		return nil, err
	}

	styles, scripts := r.registry.Assets(used)
	payload := map[string]any{
		"form":        view,
		"fields":      fieldsHTML,
		"classes":     r.classes,
		"stylesheets": r.stylesheetLinks(styles, opts),
		"scripts":     r.scriptTags(scripts, view, opts),
		"toast":       extras["toast"],
		"pager":       extras["pager"],
	}
	if r.inlineStyles {
		payload["inlineStyles"] = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderExtras(view render.FormView) (map[string]string, error) {
	out := make(map[string]string, 2)
	if view.Toast != nil {
		html, err := r.templates.RenderTemplate("templates/components/toast.tmpl", map[string]any{"toast": view.Toast})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: toast: %w", err)
		}
		out["toast"] = html
	}
	if view.Pager != nil {
		html, err := r.templates.RenderTemplate("templates/components/pager.tmpl", map[string]any{"pager": view.Pager})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: pager: %w", err)
		}
		out["pager"] = html
	}
	return out, nil
}

func (r *Renderer) sanitize(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	return strings.TrimSpace(r.policy.Sanitize(description))
}

func (r *Renderer) stylesheetLinks(component []string, opts render.RenderOptions) []string {
	links := slices.Clone(r.stylesheets)
	for _, name := range component {
		links = append(links, r.assetURL(name, opts))
	}
	return links
}

func (r *Renderer) scriptTags(component []components.Script, view render.FormView, opts render.RenderOptions) []components.Script {
	scripts := make([]components.Script, 0, len(component)+1)
	for _, script := range component {
		if script.Src != "" && !strings.Contains(script.Src, "/") {
			script.Src = r.assetURL(script.Src, opts)
		}
		scripts = append(scripts, script)
	}
	if view.Toast != nil && !view.Toast.Sticky {
		scripts = append(scripts, components.Script{Src: r.assetURL(ToastScriptName, opts), Defer: true})
	}
	return scripts
}

func (r *Renderer) assetURL(name string, opts render.RenderOptions) string {
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if url := opts.Theme.AssetURL(name); url != "" {
			return url
		}
	}
	return r.assetPrefix + name
}
