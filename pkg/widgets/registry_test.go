package widgets

import (
	"testing"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:    model.FieldTypeInteger,
		Format:  FormatHourMinute,
		UIHints: map[string]string{"widget": "set-point"},
	}

	if got, ok := reg.Resolve(field); !ok || got != WidgetSetPoint {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}

	field = model.Field{Type: model.FieldTypeBoolean, Metadata: map[string]string{"widget": "custom"}}
	if got, _ := reg.Resolve(field); got != "custom" {
		t.Fatalf("expected metadata widget, got %q", got)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{
			name:   "hour minute format",
			field:  model.Field{Type: model.FieldTypeInteger, Format: "SSI_HourMinuteToInt"},
			expect: WidgetHourMinute,
		},
		{
			name:   "format match ignores case",
			field:  model.Field{Type: model.FieldTypeInteger, Format: "ssi_hourminutetoint"},
			expect: WidgetHourMinute,
		},
		{
			name:   "set point format",
			field:  model.Field{Type: model.FieldTypeInteger, Format: "ssiSetPoint"},
			expect: WidgetSetPoint,
		},
		{
			name:   "select bit format",
			field:  model.Field{Type: model.FieldTypeInteger, Format: "ssiSelectBit"},
			expect: WidgetSelectBit,
		},
		{
			name: "integer with item enum",
			field: model.Field{
				Type:  model.FieldTypeInteger,
				Items: &model.Field{Type: model.FieldTypeString, Enum: []any{"a", "b"}},
			},
			expect: WidgetSelectBit,
		},
		{
			name:   "boolean toggle",
			field:  model.Field{Type: model.FieldTypeBoolean},
			expect: WidgetToggle,
		},
		{
			name:   "select enum",
			field:  model.Field{Type: model.FieldTypeString, Enum: []any{"a"}},
			expect: WidgetSelect,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}

	if got, ok := reg.Resolve(model.Field{Type: model.FieldTypeInteger}); ok {
		t.Fatalf("plain integer should not resolve a widget, got %q", got)
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(model.Field) bool { return true }
	reg.Register("first", 10, always)
	reg.Register("second", 10, always)
	reg.Register("", 99, always)
	reg.Register("nil", 99, nil)

	if got, _ := reg.Resolve(model.Field{}); got != "first" {
		t.Fatalf("expected registration order tie-break, got %q", got)
	}

	reg.Register("urgent", 20, always)
	if got, _ := reg.Resolve(model.Field{}); got != "urgent" {
		t.Fatalf("expected higher priority to win, got %q", got)
	}
}

func TestDecorate_NestedFields(t *testing.T) {
	form := &model.FormModel{
		Fields: []model.Field{
			{Name: "delay", Type: model.FieldTypeInteger, Format: FormatHourMinute},
			{
				Name: "stage",
				Type: model.FieldTypeObject,
				Nested: []model.Field{
					{Name: "mask", Type: model.FieldTypeInteger, Items: &model.Field{Enum: []any{"x"}}},
				},
			},
		},
	}
	if err := NewRegistry().Decorate(form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if got := form.Fields[0].UIHints["widget"]; got != WidgetHourMinute {
		t.Fatalf("expected hour-minute, got %q", got)
	}
	if got := form.Fields[1].Nested[0].UIHints["widget"]; got != WidgetSelectBit {
		t.Fatalf("expected nested select-bit, got %q", got)
	}
	if form.Fields[1].UIHints != nil {
		t.Fatalf("object without matcher should stay undecorated, got %v", form.Fields[1].UIHints)
	}
}
