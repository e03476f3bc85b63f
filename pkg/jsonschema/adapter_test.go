package jsonschema

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/internal/loader"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/testsupport"
)

func floatPtr(v float64) *float64 { return &v }

func TestAdapterNormalizeZoneFixture(t *testing.T) {
	adapter := NewAdapter(loader.New(loader.WithFS(testsupport.FS())))
	doc, err := adapter.Load(context.Background(), schema.FSSource(testsupport.ZoneSchemaPath))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !adapter.Detect(doc.Source(), doc.Raw()) {
		t.Fatal("expected fixture to be detected as JSON Schema")
	}

	ir, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, ok := ir.Form("zone-controller")
	if !ok {
		t.Fatalf("expected form id from $id, got %v", ir.FormRefs())
	}
	if form.Endpoint != "/forms/zone-controller" || form.Method != "POST" {
		t.Fatalf("unexpected endpoint %s %s", form.Method, form.Endpoint)
	}
	if form.Title != "Zone Controller" {
		t.Fatalf("unexpected title %q", form.Title)
	}

	want := schema.Schema{
		Type:       "integer",
		Format:     "SSI_HourMinuteToInt",
		Title:      "Heat delay",
		Default:    float64(90),
		Minimum:    floatPtr(0),
		Maximum:    floatPtr(10019),
		Extensions: map[string]any{"propertyOrder": float64(1)},
	}
	if diff := cmp.Diff(want, form.Schema.Properties["heatDelay"]); diff != "" {
		t.Fatalf("heatDelay mismatch (-want +got):\n%s", diff)
	}

	purge := form.Schema.Properties["purgeTime"]
	if purge.Extensions["ShowDisableCheckBox"] != false {
		t.Fatalf("expected controller option to survive as extension, got %v", purge.Extensions)
	}

	setPoint := form.Schema.Properties["setPoint"]
	if setPoint.Extensions["impliedDecimalPoints"] != float64(2) || setPoint.Extensions["disabledValue"] != float64(-32768) {
		t.Fatalf("set point options lost: %v", setPoint.Extensions)
	}

	mask := form.Schema.Properties["alarmMask"]
	if mask.Items == nil || len(mask.Items.Enum) != 3 {
		t.Fatalf("expected item enum, got %+v", mask.Items)
	}
	if _, ok := mask.Items.Extensions["options"].(map[string]any); !ok {
		t.Fatalf("expected json-editor options on items, got %v", mask.Items.Extensions)
	}

	if !form.Schema.Properties["zoneName"].ReadOnly {
		t.Fatal("expected zoneName to be read only")
	}
	if diff := cmp.Diff([]string{"heatDelay"}, form.Schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterNormalizeFormIDAndEndpoint(t *testing.T) {
	raw := []byte(`{"title":"Boiler Settings","type":"object","properties":{"a":{"type":"integer"}}}`)
	doc := schema.MustNewDocument(schema.FileSource("boiler.json"), raw)
	adapter := NewAdapter(nil)

	ir, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, ok := ir.Form("boiler-settings"); !ok {
		t.Fatalf("expected slug from title, got %v", ir.FormRefs())
	}

	ir, err = adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{FormID: "boiler", Endpoint: "/api/boiler"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, ok := ir.Form("boiler")
	if !ok || form.Endpoint != "/api/boiler" {
		t.Fatalf("expected overrides to apply, got %+v", form)
	}
}

func TestAdapterExclusiveBounds(t *testing.T) {
	raw := []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"modern": {"type": "integer", "exclusiveMinimum": -2, "exclusiveMaximum": 100},
			"legacy": {"type": "integer", "minimum": 0, "exclusiveMinimum": true, "maximum": 10}
		}
	}`)
	ir, err := NewAdapter(nil).Normalize(context.Background(), schema.MustNewDocument(schema.FileSource("b.json"), raw), schema.NormalizeOptions{FormID: "b"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, _ := ir.Form("b")

	modern := form.Schema.Properties["modern"]
	if *modern.Minimum != -2 || !modern.ExclusiveMinimum || *modern.Maximum != 100 || !modern.ExclusiveMaximum {
		t.Fatalf("unexpected numeric exclusive bounds %+v", modern)
	}
	legacy := form.Schema.Properties["legacy"]
	if *legacy.Minimum != 0 || !legacy.ExclusiveMinimum || legacy.ExclusiveMaximum {
		t.Fatalf("unexpected boolean exclusive bounds %+v", legacy)
	}
}

func TestAdapterRefSiblingOverride(t *testing.T) {
	raw := []byte(`{
		"type": "object",
		"$defs": {"flags": {"type": "integer", "title": "Flags", "items": {"enum": ["a"]}}},
		"properties": {"mask": {"$ref": "#/$defs/flags", "title": "Mask", "required": true}}
	}`)
	ir, err := NewAdapter(nil).Normalize(context.Background(), schema.MustNewDocument(schema.FileSource("r.json"), raw), schema.NormalizeOptions{FormID: "r"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, _ := ir.Form("r")
	mask := form.Schema.Properties["mask"]
	if mask.Title != "Mask" || mask.Type != "integer" || mask.Items == nil {
		t.Fatalf("unexpected merged schema %+v", mask)
	}
	if diff := cmp.Diff([]string{"mask"}, form.Schema.Required); diff != "" {
		t.Fatalf("property-level required not collected (-want +got):\n%s", diff)
	}
}

func TestAdapterNormalizeErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "cycle", raw: `{"type":"object","definitions":{"a":{"$ref":"#/definitions/b"},"b":{"$ref":"#/definitions/a"}},"properties":{"x":{"$ref":"#/definitions/a"}}}`, want: ErrRefCycle},
		{name: "external", raw: `{"type":"object","properties":{"x":{"$ref":"other.json#/a"}}}`, want: ErrExternalRef},
		{name: "dialect", raw: `{"$schema":"http://example.com/custom","type":"object"}`},
		{name: "root type", raw: `{"type":"integer"}`},
		{name: "missing ref", raw: `{"type":"object","properties":{"x":{"$ref":"#/definitions/nope"}}}`},
		{name: "tuple items", raw: `{"type":"object","properties":{"x":{"type":"array","items":[{"type":"integer"}]}}}`},
		{name: "bad type", raw: `{"type":"object","properties":{"x":{"type":"decimal"}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := schema.MustNewDocument(schema.FileSource("e.json"), []byte(tc.raw))
			_, err := NewAdapter(nil).Normalize(context.Background(), doc, schema.NormalizeOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAdapterDetect(t *testing.T) {
	adapter := NewAdapter(nil)
	if adapter.Detect(schema.Source{}, []byte(`{"openapi":"3.0.3","paths":{}}`)) {
		t.Fatal("openapi document detected as JSON Schema")
	}
	if adapter.Detect(schema.Source{}, []byte(`openapi: 3.0.3`)) {
		t.Fatal("yaml detected as JSON Schema")
	}
	if !adapter.Detect(schema.Source{}, []byte(`{"properties":{}}`)) {
		t.Fatal("expected properties-only schema to be detected")
	}
}
