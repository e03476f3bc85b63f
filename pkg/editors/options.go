package editors

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

// Box is an InputBox flattened to attribute strings for templates.
type Box struct {
	Type string `json:"type"`
	Step string `json:"step"`
	Min  string `json:"min"`
	Max  string `json:"max"`
}

func boxOf(box transcode.InputBox) Box {
	return Box{Type: box.Type, Step: box.Step, Min: box.MinAttr(), Max: box.MaxAttr()}
}

// disableConfig reads ShowDisableCheckBox and disabledValue. A missing or
// unparsable ShowDisableCheckBox leaves the checkbox enabled.
func disableConfig(field model.Field) transcode.DisableConfig {
	var show *bool
	if raw, ok := field.Metadata[model.MetadataShowDisableCheckBox]; ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			show = &parsed
		}
	}
	var disabled any
	if raw, ok := field.Metadata[model.MetadataDisabledValue]; ok {
		disabled = raw
	}
	return transcode.NewDisableConfig(show, disabled)
}

// inputOptions collects the schema bounds and step of field.
func inputOptions(field model.Field) transcode.InputOptions {
	var opts transcode.InputOptions
	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		if value, ok := transcode.Number(rule.Params["value"]); ok {
			opts.Minimum = &value
			opts.ExclusiveMinimum = rule.Params["exclusive"] == "true"
		}
	}
	if rule, ok := field.Rule(model.ValidationRuleMax); ok {
		if value, ok := transcode.Number(rule.Params["value"]); ok {
			opts.Maximum = &value
			opts.ExclusiveMaximum = rule.Params["exclusive"] == "true"
		}
	}
	if raw, ok := field.Metadata[model.MetadataStep]; ok {
		opts.Step = raw
	}
	return opts
}

// impliedDecimalPoints returns 0 unless the option is a positive integer.
func impliedDecimalPoints(field model.Field) int {
	places, ok := transcode.Integer(field.Metadata[model.MetadataImpliedDecimalPoints])
	if !ok || places < 0 {
		return 0
	}
	return places
}

func intPtr(v int) *int { return &v }

// IsDisabledValue reports whether value is the disabled sentinel of field.
// Fields without a disable checkbox never hold one.
func IsDisabledValue(field model.Field, value any) bool {
	number, ok := transcode.Number(value)
	if !ok || number != float64(int64(number)) {
		return false
	}
	return disableConfig(field).IsDisabled(int(number))
}
