package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

// RenderOptions carry per-request data into a renderer.
type RenderOptions struct {
	// Method overrides the form method. Browsers only submit GET and POST, so
	// the HTML renderer emits a hidden _method input for anything else.
	Method string
	// Values holds the stored register values as a nested object keyed by
	// field name, without the root segment: {"heatDelay": 90, "zone": {...}}.
	Values map[string]any
	// Errors are messages keyed by field path (root.heatDelay), usually the
	// Fields half of MapErrorPayload.
	Errors map[string][]string
	// FormErrors are shown above the fields.
	FormErrors []string
	// Issues are validation results from the device or a validator. Each
	// editor shows the issues addressed to its path or to an index below it.
	Issues []transcode.Issue
	// Hidden inputs emitted before the fields.
	Hidden []HiddenField
	// Theme is the resolved theme configuration, nil for the built-in look.
	Theme *theme.RendererConfig
}

// Messages returns the messages to show next to the field at path: explicit
// Errors first, then matching Issues collapsed into one sentence.
func (o RenderOptions) Messages(path string) []string {
	var out []string
	out = append(out, o.Errors[path]...)
	if joined := transcode.FieldMessages(path, o.Issues); joined != "" {
		out = append(out, joined)
	}
	return normalizeMessages(out)
}
