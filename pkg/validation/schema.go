package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
	"github.com/goliatone/go-formgen-ssi/pkg/widgets"
)

// SchemaIssue is a lint finding with optional location metadata.
type SchemaIssue struct {
	Form    string `json:"form,omitempty"`
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures the outcome of ValidateSchema.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// SchemaOptions configures ValidateSchema.
type SchemaOptions struct {
	Normalize schema.NormalizeOptions
	Builder   model.Builder
	Widgets   *widgets.Registry
}

// ValidateSchema normalises doc through adapter and builds every form it
// holds, then checks the controller options of each field. Normalisation
// failures are reported as a single issue located by their JSON pointer.
func ValidateSchema(ctx context.Context, adapter schema.FormatAdapter, doc schema.Document, opts SchemaOptions) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if adapter == nil {
		return invalid(SchemaIssue{Message: "no schema adapter"})
	}

	ir, err := adapter.Normalize(ctx, doc, opts.Normalize)
	if err != nil {
		return invalid(issueFromError(err))
	}

	builder := opts.Builder
	if builder == nil {
		builder = model.NewBuilder()
	}
	registry := opts.Widgets
	if registry == nil {
		registry = widgets.NewRegistry()
	}

	for _, ref := range ir.FormRefs() {
		form, _ := ir.Form(ref.ID)
		built, err := builder.Build(form)
		if err != nil {
			issue := issueFromError(err)
			issue.Form = ref.ID
			result.Issues = append(result.Issues, issue)
			continue
		}
		if err := registry.Decorate(&built); err != nil {
			result.Issues = append(result.Issues, SchemaIssue{Form: ref.ID, Message: err.Error()})
			continue
		}
		built.Walk(func(field *model.Field) {
			for _, message := range lintField(*field) {
				result.Issues = append(result.Issues, SchemaIssue{Form: ref.ID, Field: field.Path, Message: message})
			}
		})
	}

	result.Valid = len(result.Issues) == 0
	return result
}

func invalid(issue SchemaIssue) SchemaValidationResult {
	return SchemaValidationResult{Valid: false, Issues: []SchemaIssue{issue}}
}

// lintField reports controller options the editors would silently ignore or
// clamp.
func lintField(field model.Field) []string {
	var out []string
	widget := field.UIHints["widget"]

	if raw, ok := field.Metadata[model.MetadataImpliedDecimalPoints]; ok {
		if places, ok := transcode.Integer(raw); !ok || places < 0 {
			out = append(out, fmt.Sprintf("impliedDecimalPoints %q is not a non-negative integer", raw))
		}
	}
	if raw, ok := field.Metadata[model.MetadataDisabledValue]; ok {
		if _, ok := transcode.Integer(raw); !ok {
			out = append(out, fmt.Sprintf("disabledValue %q is not an integer", raw))
		}
	}
	if raw, ok := field.Metadata[model.MetadataStep]; ok {
		if _, ok := transcode.Number(raw); !ok {
			out = append(out, fmt.Sprintf("step %q is not a number", raw))
		}
	}

	switch widget {
	case widgets.WidgetSelectBit:
		if field.Items == nil || len(field.Items.Enum) == 0 {
			out = append(out, "select-bit field has no items.enum members")
		} else if len(field.Items.Enum) > transcode.MaxMembers {
			out = append(out, fmt.Sprintf("select-bit field has %d members, only the first %d are addressable", len(field.Items.Enum), transcode.MaxMembers))
		}
	case widgets.WidgetHourMinute, widgets.WidgetSetPoint:
		if field.Type != model.FieldTypeInteger && field.Type != model.FieldTypeNumber {
			out = append(out, fmt.Sprintf("%s field should be an integer, got %s", widget, field.Type))
		}
	}

	if editors.IsDisabledValue(field, field.Default) {
		out = append(out, "default equals the disabled value")
	}
	return out
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	msg = strings.TrimPrefix(msg, "jsonschema: ")
	msg = strings.TrimPrefix(msg, "openapi: ")
	msg = strings.TrimSpace(msg)
	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: msg,
	}
}

func extractJSONPointer(message string) string {
	if idx := strings.LastIndex(message, " at "); idx >= 0 {
		candidate := trimPointer(message[idx+4:])
		if strings.HasPrefix(candidate, "#") {
			return candidate
		}
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		return trimPointer(message[idx:])
	}
	return ""
}

func trimPointer(pointer string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(pointer), ".)];,:"))
}

// fieldPathFromPointer turns #/properties/fan/properties/speed into the
// field path root.fan.speed.
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := []string{model.DefaultRootPath}
	for idx := 0; idx < len(parts); idx++ {
		segment := unescape(parts[idx])
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescape(parts[idx+1]))
				idx++
			}
		case "items":
			out = append(out, "items")
		case "definitions", "$defs":
			if idx+1 < len(parts) {
				idx++
			}
		case "":
		default:
			out = append(out, segment)
		}
	}
	if len(out) == 1 {
		return ""
	}
	return strings.Join(out, ".")
}

func unescape(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
