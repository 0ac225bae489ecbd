package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single line prompt. Validator runs inside the
// prompt loop so the user can correct the answer before it is returned.
type InputConfig struct {
	Message     string
	Default     string
	Help        string
	Placeholder string
	Validator   func(string) error
}

// ConfirmConfig configures a yes/no prompt for checkboxes.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures radio groups, single selects and multi selects.
// Defaults holds option indices and is only read by MultiSelect.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver asks the questions a form needs. Tests substitute a scripted
// driver; the default one is backed by survey.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	stdio terminal.Stdio
}

// newSurveyDriver draws prompts on out when it is a terminal file and on
// stderr otherwise, so stdout stays free for the serialized result.
func newSurveyDriver(out io.Writer) PromptDriver {
	stdio := terminal.Stdio{In: os.Stdin, Out: os.Stderr, Err: os.Stderr}
	if fw, ok := out.(terminal.FileWriter); ok {
		stdio.Out = fw
	}
	if out != nil {
		stdio.Err = out
	}
	return &surveyDriver{stdio: stdio}
}

// ask runs one survey prompt bound to the driver streams.
func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, response any, validator func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := []survey.AskOpt{survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)}
	if validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			text, _ := ans.(string)
			return validator(text)
		}))
	}
	if err := survey.AskOne(prompt, response, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	help := cfg.Help
	if help == "" {
		help = cfg.Placeholder
	}
	var out string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: help, Default: cfg.Default}, &out, cfg.Validator)
	return out, err
}

func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Password{Message: cfg.Message, Help: cfg.Help}, &out, cfg.Validator)
	return out, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var out bool
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out, nil)
	return out, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var out survey.OptionAnswer
	if err := d.ask(ctx, prompt, &out, nil); err != nil {
		return 0, err
	}
	return out.Index, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if len(cfg.Defaults) > 0 {
		prompt.Default = validIndices(cfg.Options, cfg.Defaults)
	}
	var out []survey.OptionAnswer
	if err := d.ask(ctx, prompt, &out, nil); err != nil {
		return nil, err
	}
	indices := make([]int, 0, len(out))
	for _, answer := range out {
		indices = append(indices, answer.Index)
	}
	return indices, nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out, nil)
	return out, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.stdio.Err, msg)
	return err
}

// validIndices drops defaults that point outside options.
func validIndices(options []string, indices []int) []int {
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, idx)
		}
	}
	return out
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func indicesOf(options, values []string) []int {
	var out []int
	for i, option := range options {
		for _, v := range values {
			if option == v {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// defaultsFromIndices maps selected indices back to option values.
func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range validIndices(options, indices) {
		out = append(out, options[idx])
	}
	return out
}
