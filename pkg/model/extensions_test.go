package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

func TestParseUIExtensions(t *testing.T) {
	metadata, hints := model.ParseUIExtensions(map[string]any{
		"impliedDecimalPoints": float64(2),
		"x-formgen":            map[string]any{"widget": "set-point", "placeholder": "0.00"},
	})

	if got := metadata[model.MetadataImpliedDecimalPoints]; got != "2" {
		t.Fatalf("expected implied decimal points metadata, got %q", got)
	}
	if diff := cmp.Diff(map[string]string{"widget": "set-point", "placeholder": "0.00"}, hints); diff != "" {
		t.Fatalf("hints mismatch (-want +got):\n%s", diff)
	}

	metadata, hints = model.ParseUIExtensions(nil)
	if metadata != nil || hints != nil {
		t.Fatalf("expected nil maps, got %v %v", metadata, hints)
	}
}

func TestNewBuilderOptions(t *testing.T) {
	builder := model.NewBuilder(
		model.WithRootPath("controller"),
		model.WithLabeler(func(name string) string { return "[" + name + "]" }),
	)
	form, err := builder.Build(schema.Form{
		ID: "c", Method: "POST", Endpoint: "/c",
		Schema: schema.Schema{Type: "object", Properties: map[string]schema.Schema{"delay": {Type: "integer"}}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field := form.Fields[0]
	if field.Path != "controller.delay" || field.Label != "[delay]" {
		t.Fatalf("options ignored: %+v", field)
	}
}
