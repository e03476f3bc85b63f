package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

func submissionForm() model.FormModel {
	bounds := func(min, max string) []model.ValidationRule {
		return []model.ValidationRule{
			{Kind: model.ValidationRuleMin, Params: map[string]string{"value": min}},
			{Kind: model.ValidationRuleMax, Params: map[string]string{"value": max, "exclusive": "true"}},
		}
	}
	return model.FormModel{
		ID: "zone",
		Fields: []model.Field{
			{Name: "heatDelay", Path: "root.heatDelay", Type: model.FieldTypeInteger, Required: true, Validations: bounds("0", "600")},
			{
				Name: "setPoint", Path: "root.setPoint", Type: model.FieldTypeInteger, Validations: bounds("-4000", "12000"),
				Metadata: map[string]string{model.MetadataDisabledValue: "-32768"},
			},
			{Name: "zoneName", Path: "root.zoneName", Type: model.FieldTypeString, Required: true, ReadOnly: true},
			{
				Name: "fan", Path: "root.fan", Type: model.FieldTypeObject,
				Nested: []model.Field{{Name: "speed", Path: "root.fan.speed", Type: model.FieldTypeNumber, Validations: bounds("0", "3")}},
			},
		},
	}
}

func TestValidateSubmission(t *testing.T) {
	values := map[string]any{
		"setPoint": -5000,
		"fan":      map[string]any{"speed": 3.0},
	}
	issues := ValidateSubmission(submissionForm(), values)
	want := []transcode.Issue{
		{Path: "root.heatDelay", Message: "is required"},
		{Path: "root.setPoint", Message: "must be at least -4000"},
		{Path: "root.fan.speed", Message: "must be less than 3"},
	}
	assert.Equal(t, want, issues)
	assert.Equal(t, map[string][]string{
		"root.heatDelay": {"is required"},
		"root.setPoint":  {"must be at least -4000"},
		"root.fan.speed": {"must be less than 3"},
	}, Errors(issues))
}

func TestValidateSubmissionSkipsDisabledValue(t *testing.T) {
	values := map[string]any{"heatDelay": 90, "setPoint": -32768, "fan": map[string]any{"speed": 1}}
	assert.Empty(t, ValidateSubmission(submissionForm(), values))
	assert.Nil(t, Errors(nil))
}
