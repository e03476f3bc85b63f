package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/render"
)

func TestSetAndLookupValue(t *testing.T) {
	values := map[string]any{"fan": "legacy"}

	render.SetValue(values, "root.heatDelay", 90)
	render.SetValue(values, "root.fan.speed", 3)
	render.SetValue(values, "root", "ignored")

	want := map[string]any{
		"heatDelay": 90,
		"fan":       map[string]any{"speed": 3},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if got, ok := render.LookupValue(values, "root.fan.speed"); !ok || got != 3 {
		t.Fatalf("lookup nested: got %v (ok=%v)", got, ok)
	}
	if _, ok := render.LookupValue(values, "root.heatDelay.hours"); ok {
		t.Fatalf("expected lookup through a scalar to fail")
	}
	if _, ok := render.LookupValue(nil, "root.heatDelay"); ok {
		t.Fatalf("expected lookup on nil values to fail")
	}
}
