package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/internal/loader"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/testsupport"
)

func TestAdapterNormalizeControllerFixture(t *testing.T) {
	adapter := NewAdapter(loader.New(loader.WithFS(testsupport.FS())))
	doc, err := adapter.Load(context.Background(), schema.FSSource(testsupport.ControllerOpenAPIPath))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !adapter.Detect(doc.Source(), doc.Raw()) {
		t.Fatal("expected fixture to be detected as OpenAPI")
	}

	ir, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, ok := ir.Form("updateZone")
	if !ok {
		t.Fatalf("expected updateZone, got %v", ir.FormRefs())
	}
	if form.Method != "POST" || form.Endpoint != "/controllers/zone" {
		t.Fatalf("unexpected target %s %s", form.Method, form.Endpoint)
	}
	if form.Title != "Update zone parameters" {
		t.Fatalf("unexpected title %q", form.Title)
	}

	heat := form.Schema.Properties["heatDelay"]
	if heat.Format != "SSI_HourMinuteToInt" || heat.Minimum == nil || *heat.Maximum != 10019 {
		t.Fatalf("unexpected heatDelay %+v", heat)
	}

	setPoint := form.Schema.Properties["setPoint"]
	options, ok := setPoint.Extensions["x-formgen"].(map[string]any)
	if !ok {
		t.Fatalf("expected x-formgen extension, got %v", setPoint.Extensions)
	}
	if diff := cmp.Diff(map[string]any{"impliedDecimalPoints": float64(1), "disabledValue": float64(-32768)}, options); diff != "" {
		t.Fatalf("x-formgen mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"heatDelay"}, form.Schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterNormalizeFilters(t *testing.T) {
	adapter := NewAdapter(nil)
	doc := testsupport.Document(t, testsupport.ControllerOpenAPIPath)

	ir, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{FormID: "updateZone", Endpoint: "/zones/1"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, _ := ir.Form("updateZone")
	if form.Endpoint != "/zones/1" {
		t.Fatalf("endpoint override ignored: %q", form.Endpoint)
	}

	if _, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{FormID: "missing"}); err == nil {
		t.Fatal("expected error for unknown form")
	}
}

func TestAdapterNormalizeWithoutRequestBodies(t *testing.T) {
	raw := []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{"/status":{"get":{"responses":{"200":{"description":"ok"}}}}}}`)
	doc := schema.MustNewDocument(schema.FileSource("status.json"), raw)

	_, err := NewAdapter(nil).Normalize(context.Background(), doc, schema.NormalizeOptions{})
	if !errors.Is(err, ErrNoForms) {
		t.Fatalf("expected ErrNoForms, got %v", err)
	}
}

func TestAdapterNormalizeDerivesOperationID(t *testing.T) {
	raw := []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{"/zone":{"put":{
		"requestBody":{"content":{"application/json":{"schema":{"type":"object","title":"Zone","properties":{"a":{"type":"integer"}}}}}},
		"responses":{"204":{"description":"ok"}}}}}}`)
	doc := schema.MustNewDocument(schema.FileSource("zone.json"), raw)

	ir, err := NewAdapter(nil).Normalize(context.Background(), doc, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	form, ok := ir.Form("put:/zone")
	if !ok {
		t.Fatalf("expected derived id, got %v", ir.FormRefs())
	}
	if form.Title != "Zone" || form.Method != "PUT" {
		t.Fatalf("unexpected form %+v", form)
	}
}
