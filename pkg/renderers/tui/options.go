package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag value onto an OutputFormat.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), true
	default:
		return "", false
	}
}

// Theme captures message prefixes and the styles of the month grid.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string

	Title    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// DefaultTheme is used when WithTheme is not supplied.
func DefaultTheme() Theme {
	cell := lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	return Theme{
		InfoPrefix:  "",
		ErrorPrefix: "! ",
		Title:       lipgloss.NewStyle().Bold(true).Width(28).Align(lipgloss.Center),
		Weekday:     cell.Faint(true),
		Day:         cell,
		Today:       cell.Underline(true),
		Selected:    cell.Bold(true).Foreground(lipgloss.Color("12")),
	}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithOutput directs informational messages of the default driver.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies message prefixes and grid styles.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
