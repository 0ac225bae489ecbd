package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/calendar"
	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions: it prompts for
// every field in order, re-asking until the field's verdict is valid, and
// returns the collected values serialized in the configured format.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	out               io.Writer
	submitTransformer SubmitTransformer
	theme             Theme
	strip             *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		strip:        bluemonday.StrictPolicy(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render walks the set field by field. opts.Values seed the prompt defaults
// and opts.Errors are shown before the matching prompt.
func (r *Renderer) Render(ctx context.Context, set field.Set, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	form := render.NewForm(set, opts)
	if len(opts.Errors) > 0 {
		form.ApplyServerErrors(opts.Errors)
	}

	s := session{
		Renderer: r,
		locale:   opts.EffectiveLocale(),
		chrome:   opts.ChromeTranslator(),
		opts:     opts,
	}

	if title := form.Set().Title; title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}
	for _, message := range form.FormErrors() {
		if err := s.report(ctx, message); err != nil {
			return nil, err
		}
	}

	for _, state := range form.States() {
		if err := s.prompt(ctx, state); err != nil {
			return nil, err
		}
	}

	result := form.Submit()
	if !result.Valid {
		return nil, fmt.Errorf("tui: form still invalid after prompting: %v", result.Errors)
	}

	values := result.Values
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

type session struct {
	*Renderer
	locale string
	chrome i18n.Translator
	opts   render.RenderOptions
}

func (s session) prompt(ctx context.Context, state *field.State) error {
	if state.HasError() {
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
	}

	switch state.Mode() {
	case field.ModeChecked:
		return s.promptChecked(ctx, state)
	case field.ModeCount:
		if state.Field.EffectiveControl() == field.ControlFile {
			return s.promptFiles(ctx, state)
		}
		return s.promptMulti(ctx, state)
	}

	switch control := state.Field.EffectiveControl(); {
	case control.HasOptions():
		return s.promptChoice(ctx, state)
	case control == field.ControlDate:
		return s.promptDate(ctx, state)
	default:
		return s.promptText(ctx, state)
	}
}

func (s session) promptText(ctx context.Context, state *field.State) error {
	cfg := InputConfig{
		Message:     s.label(state.Field),
		Default:     state.Value,
		Help:        s.help(state.Field),
		Placeholder: state.Field.Placeholder,
	}

	for {
		var (
			response string
			err      error
		)
		switch state.Field.EffectiveControl() {
		case field.ControlPassword:
			response, err = s.driver.Password(ctx, cfg)
		case field.ControlTextarea:
			response, err = s.driver.TextArea(ctx, TextAreaConfig{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
		default:
			response, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		state.Change(response)
		if verdict := state.Blur(); verdict.Valid {
			return nil
		}
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
		cfg.Default = state.Value
	}
}

func (s session) promptChecked(ctx context.Context, state *field.State) error {
	for {
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.label(state.Field),
			Default: state.Checked,
			Help:    s.help(state.Field),
		})
		if err != nil {
			return err
		}
		if verdict := state.SetChecked(checked); verdict.Valid {
			return nil
		}
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
	}
}

func (s session) promptChoice(ctx context.Context, state *field.State) error {
	options := state.Field.Options
	if len(options) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOptions, state.Field.Name)
	}

	labels := make([]string, 0, len(options)+1)
	values := make([]string, 0, len(options)+1)
	if !state.Field.EffectiveConstraint().Required {
		labels = append(labels, i18n.Lookup(s.chrome, s.locale, "form.select_placeholder", "Select an option", nil))
		values = append(values, "")
	}
	for _, opt := range options {
		labels = append(labels, opt.Text())
		values = append(values, opt.Value)
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      s.label(state.Field),
			Options:      labels,
			DefaultIndex: indexOf(values, state.Value),
			Help:         s.help(state.Field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			continue
		}
		if verdict := state.Change(values[idx]); verdict.Valid {
			return nil
		}
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
	}
}

func (s session) promptMulti(ctx context.Context, state *field.State) error {
	options := state.Field.Options
	if len(options) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOptions, state.Field.Name)
	}
	labels := make([]string, len(options))
	values := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Text()
		values[i] = opt.Value
	}

	for {
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  s.label(state.Field),
			Options:  labels,
			Defaults: indicesOf(values, state.Items),
			Help:     s.help(state.Field),
		})
		if err != nil {
			return err
		}
		if verdict := state.SetItems(defaultsFromIndices(values, indices)); verdict.Valid {
			return nil
		}
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
	}
}

// promptFiles asks for comma separated paths; the count feeds the engine.
func (s session) promptFiles(ctx context.Context, state *field.State) error {
	for {
		response, err := s.driver.Input(ctx, InputConfig{
			Message: s.label(state.Field),
			Default: strings.Join(state.Items, ", "),
			Help:    s.help(state.Field),
		})
		if err != nil {
			return err
		}
		if verdict := state.SetItems(strings.Split(response, ",")); verdict.Valid {
			return nil
		}
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
	}
}

// promptDate prints the month around the current value and reads a
// dd/mm/yyyy date, re-asking on malformed input.
func (s session) promptDate(ctx context.Context, state *field.State) error {
	placeholder := i18n.Lookup(s.chrome, s.locale, "calendar.placeholder", calendar.Placeholder, nil)

	for {
		if err := s.driver.Info(ctx, s.grid(state.Value)); err != nil {
			return err
		}
		response, err := s.driver.Input(ctx, InputConfig{
			Message:     s.label(state.Field),
			Default:     state.Value,
			Help:        s.help(state.Field),
			Placeholder: placeholder,
		})
		if err != nil {
			return err
		}

		response = strings.TrimSpace(response)
		if response != "" {
			date, err := calendar.ParseDate(response)
			if err != nil {
				if err := s.report(ctx, placeholder); err != nil {
					return err
				}
				continue
			}
			response = calendar.FormatDate(date)
		}

		if verdict := state.Change(response); verdict.Valid {
			return nil
		}
		if err := s.report(ctx, state.Message()); err != nil {
			return err
		}
	}
}

func (s session) grid(value string) string {
	today := s.opts.Now()
	cursor := calendar.CursorFor(today)

	var selected *time.Time
	if date, err := calendar.ParseDate(value); err == nil {
		selected = &date
		cursor = calendar.CursorFor(date)
	}
	if s.opts.Month != nil {
		cursor = *s.opts.Month
	}

	view := render.NewMonthView(cursor, selected, today, s.locale, s.chrome)
	return indent(MonthGrid(view, s.theme), s.theme.InfoPrefix)
}

func (s session) report(ctx context.Context, message string) error {
	if message == "" {
		return nil
	}
	return s.driver.Info(ctx, s.theme.ErrorPrefix+message)
}

func (s session) label(f field.Field) string {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	return s.theme.PromptPrefix + label
}

// help strips markup from descriptions, which HTML renderers allow.
func (s session) help(f field.Field) string {
	if f.Description == "" {
		return ""
	}
	return strings.TrimSpace(s.strip.Sanitize(f.Description))
}
