package validation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/jsonschema"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/testsupport"
)

func lint(t *testing.T, raw string) SchemaValidationResult {
	t.Helper()
	doc := schema.MustNewDocument(schema.FSSource("schema.json"), []byte(raw))
	return ValidateSchema(context.Background(), jsonschema.NewAdapter(nil), doc, SchemaOptions{
		Normalize: schema.NormalizeOptions{FormID: "zone"},
	})
}

func TestValidateSchemaZoneFixture(t *testing.T) {
	doc := testsupport.Document(t, testsupport.ZoneSchemaPath)
	result := ValidateSchema(context.Background(), jsonschema.NewAdapter(nil), doc, SchemaOptions{})
	if !result.Valid {
		t.Fatalf("expected fixture to be valid: %#v", result.Issues)
	}
}

func TestValidateSchemaPointerIssue(t *testing.T) {
	result := lint(t, `{"type":"object","properties":{"fan":{"type":"object","properties":{"speed":{"type":"integer","minimum":"fast"}}}}}`)
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	want := []SchemaIssue{{
		Path:    "#/properties/fan/properties/speed",
		Field:   "root.fan.speed",
		Message: "minimum must be a number",
	}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSchemaControllerOptions(t *testing.T) {
	result := lint(t, `{
  "type": "object",
  "properties": {
    "setPoint": {"type": "integer", "format": "ssiSetPoint", "impliedDecimalPoints": "two", "disabledValue": -1, "default": -1},
    "alarmMask": {"type": "integer", "format": "ssiSelectBit"}
  }
}`)
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	want := []SchemaIssue{
		{Form: "zone", Field: "root.alarmMask", Message: "select-bit field has no items.enum members"},
		{Form: "zone", Field: "root.setPoint", Message: `impliedDecimalPoints "two" is not a non-negative integer`},
		{Form: "zone", Field: "root.setPoint", Message: "default equals the disabled value"},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldPathFromPointer(t *testing.T) {
	cases := map[string]string{
		"#/properties/heatDelay":       "root.heatDelay",
		"#/properties/alarmMask/items": "root.alarmMask.items",
		"#/definitions/minutes":        "",
		"#/properties/a~1b":            "root.a/b",
		"#":                            "",
	}
	for pointer, want := range cases {
		if got := fieldPathFromPointer(pointer); got != want {
			t.Fatalf("fieldPathFromPointer(%q) = %q, want %q", pointer, got, want)
		}
	}
}
