package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/render/template"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formgen-ssi/pkg/uischema"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string
	options   render.RenderOptions
	ids       editors.IDFunc

	used []string
	seen map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string, options render.RenderOptions, ids editors.IDFunc) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if ids == nil {
		ids = uniqueDisableID
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		partials:  partials,
		options:   options,
		ids:       ids,
		seen:      make(map[string]struct{}),
	}
}

func (r *componentRenderer) renderAll(fields []model.Field) (string, error) {
	var out strings.Builder
	for _, field := range fields {
		markup, err := r.render(field)
		if err != nil {
			return "", err
		}
		out.WriteString(markup)
	}
	return out.String(), nil
}

func (r *componentRenderer) render(field model.Field) (string, error) {
	var (
		componentName = components.NameObject
		view          any
	)
	if field.Type != model.FieldTypeObject {
		editor := editors.For(field, editors.WithIDFunc(r.ids))
		componentName = editor.Widget()
		if _, ok := r.registry.Lookup(componentName); !ok {
			componentName = components.NameInput
		}
		value, ok := render.LookupValue(r.options.Values, field.Path)
		if !ok {
			value = field.Default
		}
		view = editor.View(field.Path, value)
	}

	descriptor, ok := r.registry.Lookup(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.Path)
	}

	messages := r.options.Messages(field.Path)
	data := components.ComponentData{
		Template:      r.templates,
		View:          view,
		ControlID:     componentControlID(field.Path),
		Messages:      messages,
		ThemePartials: r.partials,
		RenderChild:   r.render,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.Path, err)
	}
	r.markUsed(componentName)

	return buildFieldMarkup(field, componentName, control.String(), messages), nil
}

func (r *componentRenderer) markUsed(name string) {
	if _, ok := r.seen[name]; ok {
		return
	}
	r.seen[name] = struct{}{}
	r.used = append(r.used, name)
}

func (r *componentRenderer) stylesheets() []string {
	return r.registry.Stylesheets(r.used)
}

func buildFieldMarkup(field model.Field, componentName, control string, messages []string) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="`)
	b.WriteString(ClassField.String())
	if extra := sanitizeClassList(field.UIHints["cssClass"]); extra != "" {
		b.WriteByte(' ')
		b.WriteString(html.EscapeString(extra))
	}
	b.WriteString(`" data-component="`)
	b.WriteString(html.EscapeString(componentName))
	b.WriteString(`" data-path="`)
	b.WriteString(html.EscapeString(field.Path))
	b.WriteString(`"`)
	if len(messages) > 0 {
		b.WriteString(` data-invalid="true"`)
	}
	b.WriteString(">\n")

	if shouldRenderLabel(field, componentName) {
		if labelSupportsFor(componentName) {
			b.WriteString(`  <label for="`)
			b.WriteString(html.EscapeString(componentControlID(field.Path)))
			b.WriteString(`">`)
		} else {
			b.WriteString(`  <span class="ssiform-label">`)
		}
		b.WriteString(html.EscapeString(field.Label))
		if field.Required {
			b.WriteString(` *`)
		}
		if labelSupportsFor(componentName) {
			b.WriteString("</label>\n")
		} else {
			b.WriteString("</span>\n")
		}
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if desc := strings.TrimSpace(field.Description); desc != "" && !componentHandlesLabel(componentName) {
		b.WriteString(`  <small class="ssiform-description">`)
		b.WriteString(html.EscapeString(desc))
		b.WriteString("</small>\n")
	}
	// helpText may carry inline markup.
	if hint := uischema.SanitizeHelpText(field.UIHints["helpText"]); hint != "" {
		b.WriteString(`  <small class="`)
		b.WriteString(ClassHelp.String())
		b.WriteString(`">`)
		b.WriteString(hint)
		b.WriteString("</small>\n")
	}

	if len(messages) > 0 {
		b.WriteString(`  <ul class="`)
		b.WriteString(ClassMessages.String())
		b.WriteString(`" role="alert">`)
		for _, message := range messages {
			b.WriteString("<li>")
			b.WriteString(html.EscapeString(message))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

func shouldRenderLabel(field model.Field, componentName string) bool {
	if componentHandlesLabel(componentName) || strings.TrimSpace(field.Label) == "" {
		return false
	}
	return strings.TrimSpace(field.UIHints["hideLabel"]) != "true"
}
