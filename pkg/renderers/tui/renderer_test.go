package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	inputConfigs []InputConfig
	multiConfigs []SelectConfig
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func zoneForm() model.FormModel {
	return model.FormModel{
		ID:    "zone",
		Title: "Zone 1",
		Fields: []model.Field{
			{
				Name: "heatDelay", Path: "root.heatDelay", Label: "Heat delay",
				Type: model.FieldTypeInteger, Format: "SSI_HourMinuteToInt",
				Metadata: map[string]string{model.MetadataShowDisableCheckBox: "false"},
			},
			{
				Name: "setPoint", Path: "root.setPoint", Label: "Set point",
				Type: model.FieldTypeInteger, Format: "ssiSetPoint",
				Metadata: map[string]string{
					model.MetadataShowDisableCheckBox:  "true",
					model.MetadataDisabledValue:        "-32768",
					model.MetadataImpliedDecimalPoints: "1",
				},
			},
			{
				Name: "alarmMask", Path: "root.alarmMask", Label: "Alarms",
				Type: model.FieldTypeInteger, Format: "ssiSelectBit",
				Items: &model.Field{Type: model.FieldTypeString, Enum: []any{"lo", "hi", "fault"}, EnumTitles: []string{"Low", "High", "Fault"}},
			},
			{Name: "mode", Path: "root.mode", Label: "Mode", Type: model.FieldTypeString, Enum: []any{"auto", "manual"}},
			{Name: "enabled", Path: "root.enabled", Label: "Enabled", Type: model.FieldTypeBoolean},
		},
	}
}

func decodeJSON(t *testing.T, payload []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("decode output %s: %v", payload, err)
	}
	return out
}

func TestRenderCollectsRawValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"1", "30", "abc", "21.5"},
		confirm:   []bool{false, true},
		multiIdx:  [][]int{{0, 2}},
		selectIdx: []int{1},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), zoneForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]any{
		"heatDelay": float64(90),
		"setPoint":  float64(215),
		"alarmMask": float64(5),
		"mode":      "manual",
		"enabled":   true,
	}
	if diff := cmp.Diff(want, decodeJSON(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	var invalid bool
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, "Invalid Set point: not a number") {
			invalid = true
		}
	}
	if !invalid {
		t.Fatalf("expected a validation message, got %v", driver.infoMessages)
	}
	if driver.infoMessages[0] != "Zone 1" {
		t.Fatalf("expected form title first, got %v", driver.infoMessages)
	}
}

func TestRenderPrefillsFromValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"2", "5", "19"},
		confirm:   []bool{false, false},
		multiIdx:  [][]int{{1}},
		selectIdx: []int{0},
	}
	r := New(WithPromptDriver(driver))

	values := map[string]any{"heatDelay": 125, "setPoint": 190, "alarmMask": 3}
	if _, err := r.Render(context.Background(), zoneForm(), render.RenderOptions{Values: values}); err != nil {
		t.Fatalf("render: %v", err)
	}

	defaults := make([]string, 0, len(driver.inputConfigs))
	for _, cfg := range driver.inputConfigs {
		defaults = append(defaults, cfg.Default)
	}
	if diff := cmp.Diff([]string{"2", "5", "19.0"}, defaults); diff != "" {
		t.Fatalf("prompt defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("multi-select defaults mismatch (-want +got):\n%s", diff)
	}
	if values["heatDelay"] != 125 {
		t.Fatalf("prefill map mutated: %v", values)
	}
}

func TestRenderDisabledSetPointAsForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"0", "45"},
		confirm:   []bool{true, false},
		multiIdx:  [][]int{{}},
		selectIdx: []int{0},
	}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := r.Render(context.Background(), zoneForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	form, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if form.Get("root.setPoint.disabled") != "on" {
		t.Fatalf("expected disable checkbox, got %v", form)
	}
	if _, ok := form["root.setPoint"]; ok {
		t.Fatalf("disabled set point should not carry a value: %v", form)
	}
	if form.Get("root.heatDelay.minutes") != "45" || form.Get("root.mode") != "auto" {
		t.Fatalf("unexpected inputs %v", form)
	}
	if _, ok := form["root.enabled"]; ok {
		t.Fatalf("unchecked boolean should be omitted: %v", form)
	}
}

func TestRenderPrettyTextAndReadOnly(t *testing.T) {
	form := zoneForm()
	form.Fields = form.Fields[:2]
	form.Fields[1].ReadOnly = true

	driver := &stubDriver{inputs: []string{"0", "15"}}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), form, render.RenderOptions{Values: map[string]any{"setPoint": 200}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "heatDelay = 15\nsetPoint = 200\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if driver.confirmPos != 0 {
		t.Fatalf("read-only field should not prompt")
	}
}

func TestRenderShowsMessages(t *testing.T) {
	form := zoneForm()
	form.Fields = form.Fields[:1]
	driver := &stubDriver{inputs: []string{"0", "1"}}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "E: "}))

	options := render.RenderOptions{
		Errors:     map[string][]string{"root.heatDelay": {"too long"}},
		FormErrors: []string{"controller offline"},
	}
	if _, err := r.Render(context.Background(), form, options); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{"Zone 1", "E: controller offline", "E: Heat delay: too long"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAborted(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}
	r := New(WithPromptDriver(driver))

	_, err := r.Render(context.Background(), zoneForm(), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, zoneForm(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStateSetAndValue(t *testing.T) {
	state := NewState(map[string]any{"fan": map[string]any{"speed": 3}})
	state.Set("root.fan.mode", "auto")

	if got, ok := state.Value("root.fan.speed"); !ok || got != 3 {
		t.Fatalf("unexpected speed %v (%v)", got, ok)
	}
	if got, _ := state.Value("root.fan.mode"); got != "auto" {
		t.Fatalf("unexpected mode %v", got)
	}
}
