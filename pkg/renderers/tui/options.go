package tui

import "io"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the nested raw register values as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the collected inputs exactly as the
	// HTML form would post them.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "path = value" line per register.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds message prefixes the renderer applies to Info output.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

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

// WithOutput sets where the default driver prints info lines.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.out = w
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
