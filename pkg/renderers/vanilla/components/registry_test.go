package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

func noopRenderer(*bytes.Buffer, model.Field, ComponentData) error { return nil }

func TestRegistry_RegisterAndClone(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Renderer: noopRenderer}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := reg.Register("gauge", Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	reg.MustRegister("Gauge", Descriptor{Renderer: noopRenderer, Stylesheets: []string{"/gauge.css"}})
	reg.MustRegister("dial", Descriptor{Renderer: noopRenderer, Stylesheets: []string{"/gauge.css", "/dial.css"}})

	clone := reg.Clone()
	clone.MustRegister("extra", Descriptor{Renderer: noopRenderer})

	if diff := cmp.Diff([]string{"dial", "gauge"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := clone.Lookup("extra"); !ok {
		t.Fatalf("clone should see its own registration")
	}
	if _, ok := reg.Lookup("EXTRA"); ok {
		t.Fatalf("clone should be independent of the source registry")
	}

	got := reg.Stylesheets([]string{"gauge", "dial", "missing"})
	if diff := cmp.Diff([]string{"/gauge.css", "/dial.css"}, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistry(t *testing.T) {
	want := []string{NameHourMinute, NameInput, NameObject, NameSelectBit, NameSetPoint}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("default components mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectRenderer_RendersChildren(t *testing.T) {
	field := model.Field{
		Name:  "fan",
		Path:  "root.fan",
		Type:  model.FieldTypeObject,
		Label: "Fan <stage>",
		Nested: []model.Field{
			{Name: "speed", Path: "root.fan.speed"},
			{Name: "mode", Path: "root.fan.mode"},
		},
	}
	var buf bytes.Buffer
	err := objectRenderer(&buf, field, ComponentData{
		ControlID: "fg-root.fan",
		RenderChild: func(child model.Field) (string, error) {
			return "[" + child.Path + "]", nil
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<fieldset class=\"ssiform-fieldset\" id=\"fg-root.fan\">\n<legend>Fan &lt;stage&gt;</legend>\n[root.fan.speed][root.fan.mode]</fieldset>\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}
