package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/pagination"
	"github.com/goliatone/go-formkit/pkg/toast"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// ControlIDPrefix prefixes the id attribute of every control.
const ControlIDPrefix = "fk-"

// FormView is the renderer-neutral state of a form: localized copy, current
// values and the error on display for each field.
type FormView struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Action            string        `json:"action"`
	Method            string        `json:"method"`
	Locale            string        `json:"locale"`
	Hidden            []HiddenField `json:"hidden,omitempty"`
	Fields            []FieldView   `json:"fields"`
	FormErrors        []string      `json:"formErrors,omitempty"`
	Valid             bool          `json:"valid"`
	SubmitLabel       string        `json:"submitLabel"`
	Multipart         bool          `json:"multipart"`
	Toast             *ToastView    `json:"toast,omitempty"`
	Pager             *PagerView    `json:"pager,omitempty"`
	Theme             ThemeView     `json:"theme"`
	SelectPlaceholder string        `json:"selectPlaceholder"`
}

// FieldView is one control ready for display.
type FieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Control     string       `json:"control"`
	InputType   string       `json:"inputType"`
	Placeholder string       `json:"placeholder,omitempty"`
	Description string       `json:"description,omitempty"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Items       []string     `json:"items,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
	Multiple    bool         `json:"multiple"`
	Searchable  bool         `json:"searchable"`
	Required    bool         `json:"required"`
	MinLength   *int         `json:"minLength,omitempty"`
	MaxLength   *int         `json:"maxLength,omitempty"`
	Step        string       `json:"step,omitempty"`
	Min         string       `json:"min,omitempty"`
	Invalid     bool         `json:"invalid"`
	Message     string       `json:"message,omitempty"`
	FileSummary string       `json:"fileSummary,omitempty"`
	Calendar    *MonthView   `json:"calendar,omitempty"`
}

// OptionView is one choice with its selection state.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ToastView is a notification ready for display.
type ToastView struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Position   string `json:"position"`
	DurationMS int64  `json:"durationMs"`
	Sticky     bool   `json:"sticky"`
	CloseLabel string `json:"closeLabel"`
}

// PagerView is a pagination footer. Number is the 1-based page shown to
// users; Page stays 0-based.
type PagerView struct {
	Page       int    `json:"page"`
	Number     int    `json:"number"`
	TotalPages int    `json:"totalPages"`
	Size       int    `json:"size"`
	Sizes      []int  `json:"sizes"`
	Text       string `json:"text"`
	SizeLabel  string `json:"sizeLabel"`
	CanPrev    bool   `json:"canPrev"`
	CanNext    bool   `json:"canNext"`
	PrevPage   int    `json:"prevPage"`
	NextPage   int    `json:"nextPage"`
	LastPage   int    `json:"lastPage"`
}

// ThemeView flattens the go-theme renderer config.
type ThemeView struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
	Partials     map[string]string `json:"partials,omitempty"`
}

// BuildView runs set through a field.Form seeded from opts and returns what a
// renderer needs to draw it. Values are loaded silently; errors are shown only
// when opts.Validate is set or the backend reported them.
func BuildView(set field.Set, opts RenderOptions) FormView {
	locale := opts.EffectiveLocale()
	chrome := opts.ChromeTranslator()

	form := NewForm(set, opts)
	set = form.Set()
	if opts.Validate {
		form.Submit()
	}
	var formErrors []string
	if len(opts.Errors) > 0 {
		form.ApplyServerErrors(opts.Errors)
		formErrors = form.FormErrors()
	}

	method := opts.Method
	if method == "" {
		method = set.EffectiveMethod()
	}
	formMethod, override := ResolveMethod(method)
	hidden := opts.Hidden
	if override != "" {
		hidden = MergeHiddenFields(hidden, Hidden(MethodOverrideField, override))
	}

	view := FormView{
		ID:                set.ID,
		Title:             set.Title,
		Action:            set.Action,
		Method:            formMethod,
		Locale:            locale,
		Hidden:            SortedHiddenFields(hidden),
		FormErrors:        formErrors,
		Valid:             len(formErrors) == 0,
		SubmitLabel:       i18n.Lookup(chrome, locale, "form.submit", "Submit", nil),
		SelectPlaceholder: i18n.Lookup(chrome, locale, "form.select_placeholder", "Select an option", nil),
		Theme:             themeView(opts),
	}

	today := opts.today()
	for _, state := range form.States() {
		fv := fieldView(state, locale, chrome)
		if state.Field.EffectiveControl() == field.ControlDate {
			month := monthFor(state.Value, opts.Month, today)
			var selected *time.Time
			if t, err := calendar.ParseDate(state.Value); err == nil {
				selected = &t
			}
			mv := NewMonthView(month, selected, today, locale, chrome)
			fv.Calendar = &mv
		}
		if state.Field.EffectiveControl() == field.ControlFile {
			view.Multipart = true
		}
		if fv.Invalid {
			view.Valid = false
		}
		view.Fields = append(view.Fields, fv)
	}

	if opts.Toast != nil {
		view.Toast = toastView(*opts.Toast, locale, chrome)
	}
	if opts.Pager != nil {
		view.Pager = pagerView(*opts.Pager, locale, chrome)
	}
	return view
}

// NewForm localizes set and seeds a field.Form with opts.Values through the
// engine opts selects. Values load silently: no error is shown until an event
// or Submit.
func NewForm(set field.Set, opts RenderOptions) *field.Form {
	LocalizeSet(&set, opts)
	return field.NewForm(set,
		field.WithEngine(opts.engine()),
		field.WithDefaults(defaultsFromValues(set, opts.Values)),
	)
}

func fieldView(s *field.State, locale string, chrome i18n.Translator) FieldView {
	f := s.Field
	control := f.EffectiveControl()
	c := f.EffectiveConstraint()
	hints := f.Hints()

	fv := FieldView{
		Name:        f.Name,
		ID:          ControlIDPrefix + f.Name,
		Label:       f.Label,
		Control:     string(control),
		InputType:   inputType(control, hints),
		Placeholder: f.Placeholder,
		Description: f.Description,
		Value:       s.Value,
		Checked:     s.Checked,
		Items:       s.Items,
		Multiple:    f.Multiple,
		Searchable:  f.Searchable,
		Required:    c.Required,
		MinLength:   c.MinLength,
		MaxLength:   c.MaxLength,
		Step:        hints.Step,
		Min:         hints.Min,
		Invalid:     s.HasError(),
		Message:     s.Message(),
	}
	if fv.Label == "" {
		fv.Label = f.Name
	}
	if control == field.ControlDate && fv.Placeholder == "" {
		fv.Placeholder = i18n.Lookup(chrome, locale, "calendar.placeholder", calendar.Placeholder, nil)
	}
	if control == field.ControlFile && len(s.Items) > 0 {
		fv.FileSummary = i18n.Lookup(chrome, locale, "form.file_selected", "%d file(s) selected", nil, len(s.Items))
	}

	selected := make(map[string]bool, len(s.Items)+1)
	for _, item := range s.Items {
		selected[item] = true
	}
	if s.Value != "" {
		selected[s.Value] = true
	}
	for _, opt := range f.Options {
		fv.Options = append(fv.Options, OptionView{
			Value:    opt.Value,
			Label:    opt.Text(),
			Selected: selected[opt.Value],
		})
	}
	return fv
}

func inputType(control field.Control, hints validation.InputHints) string {
	switch control {
	case field.ControlPassword, field.ControlSearch, field.ControlFile, field.ControlCheckbox, field.ControlRadio:
		return string(control)
	case field.ControlDate:
		return "text"
	default:
		return hints.Type
	}
}

// monthFor picks the month a date control opens on: an explicit cursor, the
// selected date, then today.
func monthFor(value string, explicit *calendar.Cursor, today time.Time) calendar.Cursor {
	if explicit != nil {
		return *explicit
	}
	if t, err := calendar.ParseDate(value); err == nil {
		return calendar.CursorFor(t)
	}
	return calendar.CursorFor(today)
}

// defaultsFromValues turns prefill values into the string defaults a
// field.Form accepts.
func defaultsFromValues(set field.Set, values map[string]any) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for _, f := range set.Fields {
		raw, ok := values[f.Name]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case nil:
			out[f.Name] = ""
		case string:
			out[f.Name] = v
		case bool:
			out[f.Name] = strconv.FormatBool(v)
		case []string:
			out[f.Name] = strings.Join(v, ",")
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			out[f.Name] = strings.Join(parts, ",")
		case time.Time:
			out[f.Name] = calendar.FormatDate(v)
		default:
			out[f.Name] = fmt.Sprint(v)
		}
	}
	return out
}

func toastView(t toast.Toast, locale string, chrome i18n.Translator) *ToastView {
	return &ToastView{
		ID:         t.ID,
		Message:    t.Message,
		Type:       string(t.Type),
		Position:   string(t.Position),
		DurationMS: t.Duration.Milliseconds(),
		Sticky:     t.Sticky(),
		CloseLabel: i18n.Lookup(chrome, locale, "toast.close", "Close", nil),
	}
}

func pagerView(p pagination.Pager, locale string, chrome i18n.Translator) *PagerView {
	p = p.Go(p.Page)
	total := p.TotalPages()
	return &PagerView{
		Page:       p.Page,
		Number:     p.Page + 1,
		TotalPages: total,
		Size:       p.Size,
		Sizes:      append([]int(nil), p.Sizes...),
		Text:       i18n.Lookup(chrome, locale, "pagination.pages", "Pages: %d of %d", nil, p.Page+1, total),
		SizeLabel:  i18n.Lookup(chrome, locale, "pagination.size", "Size:", nil),
		CanPrev:    p.CanPrev(),
		CanNext:    p.CanNext(),
		PrevPage:   p.Prev().Page,
		NextPage:   p.Next().Page,
		LastPage:   total - 1,
	}
}

func themeView(opts RenderOptions) ThemeView {
	cfg := opts.Theme
	if cfg == nil {
		return ThemeView{}
	}
	return ThemeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		Tokens:       copyStringMap(cfg.Tokens),
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
		Partials:     copyStringMap(cfg.Partials),
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
