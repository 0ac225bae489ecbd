package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formkit/components/calendar"
	"github.com/goliatone/go-formkit/components/validation"
	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/httpx"
	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/toast"
)

//go:embed web/*
var webFS embed.FS

const (
	assetsRoute  = "/assets/formkit/"
	contactRoute = "/contact"
	maxUpload    = 8 << 20
)

// demo serves the contact form and handles its submissions.
type demo struct {
	cfg      config.Server
	log      *logger.Logger
	set      field.Set
	renderer render.Renderer
	pages    *gotemplate.Engine
	toasts   *toast.Service

	calendarPath string
	validatePath string
}

func newServer(cfg config.Server, log *logger.Logger) (http.Handler, error) {
	set, err := field.LoadFS(webFS, "web/contact.yaml")
	if err != nil {
		return nil, err
	}
	set.Action = httpx.MountPath(cfg.BasePath, contactRoute)

	renderer, err := vanilla.New(
		vanilla.WithDefaultStyles(),
		vanilla.WithAssetPrefix(httpx.MountPath(cfg.BasePath, assetsRoute)),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	pages, err := gotemplate.New(gotemplate.WithFS(webFS), gotemplate.WithExtension(".tmpl"))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware)

	calendarPath, err := calendar.New(calendar.WithRollover(cfg.CalendarRollover)).RegisterRoutes(r, cfg.BasePath)
	if err != nil {
		return nil, err
	}
	validatePath, err := validation.New(
		validation.WithMaxBodyBytes(cfg.MaxBodyBytes),
		validation.WithDefaultLocale(cfg.Locale),
	).RegisterRoutes(r, cfg.BasePath)
	if err != nil {
		return nil, err
	}

	d := &demo{
		cfg:          cfg,
		log:          log,
		set:          set,
		renderer:     renderer,
		pages:        pages,
		toasts:       toast.NewService(),
		calendarPath: calendarPath,
		validatePath: validatePath,
	}

	assets := httpx.MountPath(cfg.BasePath, assetsRoute)
	r.Handle(assets+"*", http.StripPrefix(assets, http.FileServer(http.FS(vanilla.AssetsFS()))))
	r.Get(httpx.MountPath(cfg.BasePath, "/"), d.show)
	r.Post(set.Action, d.submit)
	r.Get(httpx.MountPath(cfg.BasePath, "/healthz"), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r, nil
}

func (d *demo) locale(r *http.Request) string {
	if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
		return locale
	}
	return d.cfg.Locale
}

func (d *demo) show(w http.ResponseWriter, r *http.Request) {
	d.page(w, r, http.StatusOK, render.RenderOptions{Locale: d.locale(r)}, nil)
}

func (d *demo) submit(w http.ResponseWriter, r *http.Request) {
	values, err := submittedValues(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := render.RenderOptions{Locale: d.locale(r)}
	form := render.NewForm(d.set, opts)
	form.Bind(values)
	result := form.Submit()

	if !result.Valid {
		d.log.WithFields(map[string]any{"errors": result.Errors}).Debug("contact form rejected")
		opts.Values = result.Values
		opts.Validate = true
		d.page(w, r, http.StatusUnprocessableEntity, opts, nil)
		return
	}

	d.log.WithFields(map[string]any{"form": d.set.ID}).Info("contact form accepted")
	notice := d.toasts.Show("Thanks, we received your message", toast.TypeSuccess)
	opts.Toast = &notice
	d.page(w, r, http.StatusOK, opts, result.Values)
}

func (d *demo) page(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions, submitted map[string]any) {
	form, err := d.renderer.Render(r.Context(), d.set, opts)
	if err != nil {
		d.log.Error(err, "render form")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"lang":             opts.EffectiveLocale(),
		"title":            d.set.Title,
		"calendarEndpoint": d.calendarPath,
		"validateEndpoint": d.validatePath,
		"form":             string(form),
	}
	if submitted != nil {
		payload, err := json.MarshalIndent(submitted, "", "  ")
		if err == nil {
			data["submitted"] = string(payload)
		}
	}

	page, err := d.pages.RenderTemplate("web/page", data)
	if err != nil {
		d.log.Error(err, "render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}

// submittedValues merges url-encoded and multipart fields. Uploaded files
// contribute their names under the field they were sent with.
func submittedValues(r *http.Request) (map[string][]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		values := make(map[string][]string, len(r.MultipartForm.Value)+len(r.MultipartForm.File))
		for key, v := range r.MultipartForm.Value {
			values[key] = v
		}
		for key, files := range r.MultipartForm.File {
			values[key] = fileNames(files)
		}
		return values, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	return r.PostForm, nil
}

func fileNames(files []*multipart.FileHeader) []string {
	names := make([]string, 0, len(files))
	for _, file := range files {
		if file != nil && file.Filename != "" {
			names = append(names, file.Filename)
		}
	}
	return names
}
