package validation

import (
	"fmt"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

// ValidateSubmission checks decoded values against the field rules. Required
// fields must be present and numbers must respect their bounds. Read-only
// fields and registers holding their disabled value are skipped. Bounds
// apply to the stored register, not the displayed value.
func ValidateSubmission(form model.FormModel, values map[string]any) []transcode.Issue {
	var issues []transcode.Issue
	form.Walk(func(field *model.Field) {
		if field.Type == model.FieldTypeObject || field.ReadOnly {
			return
		}
		value, ok := render.LookupValue(values, field.Path)
		if !ok || value == nil || value == "" {
			if field.Required {
				issues = append(issues, transcode.Issue{Path: field.Path, Message: "is required"})
			}
			return
		}
		if editors.IsDisabledValue(*field, value) {
			return
		}
		number, ok := comparable(*field, value)
		if !ok {
			return
		}
		for _, message := range checkBounds(*field, number) {
			issues = append(issues, transcode.Issue{Path: field.Path, Message: message})
		}
	})
	return issues
}

// Errors groups issues by path in the shape render.Submission expects.
func Errors(issues []transcode.Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range issues {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

func comparable(field model.Field, value any) (float64, bool) {
	if field.Type != model.FieldTypeInteger && field.Type != model.FieldTypeNumber {
		return 0, false
	}
	return transcode.Number(value)
}

func checkBounds(field model.Field, value float64) []string {
	var out []string
	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		if bound, ok := transcode.Number(rule.Params["value"]); ok {
			exclusive := rule.Params["exclusive"] == "true"
			switch {
			case exclusive && value <= bound:
				out = append(out, fmt.Sprintf("must be greater than %s", rule.Params["value"]))
			case !exclusive && value < bound:
				out = append(out, fmt.Sprintf("must be at least %s", rule.Params["value"]))
			}
		}
	}
	if rule, ok := field.Rule(model.ValidationRuleMax); ok {
		if bound, ok := transcode.Number(rule.Params["value"]); ok {
			exclusive := rule.Params["exclusive"] == "true"
			switch {
			case exclusive && value >= bound:
				out = append(out, fmt.Sprintf("must be less than %s", rule.Params["value"]))
			case !exclusive && value > bound:
				out = append(out, fmt.Sprintf("must be at most %s", rule.Params["value"]))
			}
		}
	}
	return out
}
