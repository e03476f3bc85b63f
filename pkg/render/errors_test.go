package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

func zoneForm() model.FormModel {
	return model.FormModel{
		ID: "zone",
		Fields: []model.Field{
			{Name: "heatDelay", Path: "root.heatDelay", Type: model.FieldTypeInteger},
			{Name: "alarmMask", Path: "root.alarmMask", Type: model.FieldTypeInteger},
			{
				Name: "fan",
				Path: "root.fan",
				Type: model.FieldTypeObject,
				Nested: []model.Field{
					{Name: "speed", Path: "root.fan.speed", Type: model.FieldTypeInteger},
				},
			},
		},
	}
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"root.heatDelay":         {"Heat delay too long"},
		"/body/fan/speed":        {"Speed out of range"},
		"alarmMask[3]":           {"Unknown alarm bit"},
		"$.payload.fan":          {"Fan missing"},
		"non_field_errors":       {"Controller offline"},
		"request/body/unknown":   {"Should fall back to form errors"},
		"":                       {"  "},
		"#/root/fan/speed/~1rpm": {"Malformed speed"},
	}

	mapped := render.MapErrorPayload(zoneForm(), payload)

	wantFields := map[string][]string{
		"root.heatDelay": {"Heat delay too long"},
		"root.fan.speed": {"Speed out of range", "Malformed speed"},
		"root.alarmMask": {"Unknown alarm bit"},
		"root.fan":       {"Fan missing"},
	}
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(wantFields, mapped.Fields, sortStrings); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Controller offline", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form, sortStrings); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOptionsMessages(t *testing.T) {
	opts := render.RenderOptions{
		Errors: map[string][]string{"root.alarmMask": {"Rejected by controller"}},
		Issues: []transcode.Issue{
			{Path: "root.alarmMask", Message: "Too many alarms"},
			{Path: "root.alarmMask.2", Message: "Sensor alarm unsupported"},
			{Path: "root.alarmMaskExtra", Message: "Unrelated"},
		},
	}

	got := opts.Messages("root.alarmMask")
	want := []string{"Rejected by controller", "Too many alarms. Sensor alarm unsupported."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	if got := opts.Messages("root.heatDelay"); got != nil {
		t.Fatalf("expected no messages, got %v", got)
	}
}
