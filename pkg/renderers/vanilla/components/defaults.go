package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

const templatePrefix = "templates/components/"

// Theme partial keys, looked up in ComponentData.ThemePartials.
const (
	PartialInput      = "forms.input"
	PartialHourMinute = "forms.hour-minute"
	PartialSetPoint   = "forms.set-point"
	PartialSelectBit  = "forms.select-bit"
)

// NewDefaultRegistry returns a registry with the plain input, the three
// controller editors and nested objects.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameHourMinute, Descriptor{
		Renderer: templateComponentRenderer(PartialHourMinute, templatePrefix+"hour_minute.tmpl"),
	})
	registry.MustRegister(NameSetPoint, Descriptor{
		Renderer: templateComponentRenderer(PartialSetPoint, templatePrefix+"set_point.tmpl"),
	})
	registry.MustRegister(NameSelectBit, Descriptor{
		Renderer: templateComponentRenderer(PartialSelectBit, templatePrefix+"select_bit.tmpl"),
	})
	registry.MustRegister(NameObject, Descriptor{
		Renderer: objectRenderer,
	})

	return registry
}

// DefaultPartials maps every partial key to its built-in template, the
// fallback for themes that override only some of them.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:      templatePrefix + "input.tmpl",
		PartialHourMinute: templatePrefix + "hour_minute.tmpl",
		PartialSetPoint:   templatePrefix + "set_point.tmpl",
		PartialSelectBit:  templatePrefix + "select_bit.tmpl",
	}
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}

		payload := map[string]any{
			"field":       field,
			"view":        data.View,
			"id":          data.ControlID,
			"invalid":     len(data.Messages) > 0,
			"placeholder": field.UIHints["placeholder"],
			"unit":        field.UIHints["unit"],
		}
		rendered, err := data.Template.RenderTemplate(resolved, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// objectRenderer groups nested fields in a fieldset.
func objectRenderer(buf *bytes.Buffer, field model.Field, data ComponentData) error {
	buf.WriteString(`<fieldset class="ssiform-fieldset`)
	if extra := strings.TrimSpace(field.UIHints["cssClass"]); extra != "" {
		buf.WriteByte(' ')
		buf.WriteString(html.EscapeString(extra))
	}
	buf.WriteString(`"`)
	if data.ControlID != "" {
		buf.WriteString(` id="`)
		buf.WriteString(html.EscapeString(data.ControlID))
		buf.WriteString(`"`)
	}
	if field.ReadOnly {
		buf.WriteString(` disabled`)
	}
	buf.WriteString(">\n")

	if label := strings.TrimSpace(field.Label); label != "" {
		buf.WriteString("<legend>")
		buf.WriteString(html.EscapeString(label))
		buf.WriteString("</legend>\n")
	}

	if data.RenderChild == nil && len(field.Nested) > 0 {
		return fmt.Errorf("components: object %q has nested fields but no child renderer", field.Path)
	}
	for _, child := range field.Nested {
		markup, err := data.RenderChild(child)
		if err != nil {
			return err
		}
		buf.WriteString(markup)
	}
	buf.WriteString("</fieldset>\n")
	return nil
}
