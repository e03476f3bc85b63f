package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer by prompting for every field in the
// terminal. Prompts are fed through the same editors the HTML renderer uses,
// so the output holds raw register values.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	out          io.Writer
	theme        Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		out:          os.Stdout,
		theme:        Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field, starting from options.Values, and returns
// the edited values serialized per the output format.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	if form.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Title); err != nil {
			return nil, err
		}
	}
	for _, message := range options.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	state := NewState(options.Values)
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, state, options); err != nil {
			return nil, err
		}
	}
	return r.serialize(state)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State, options render.RenderOptions) error {
	for _, message := range options.Messages(field.Path) {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, displayLabel(field), message)); err != nil {
			return err
		}
	}

	if field.Type == model.FieldTypeObject {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+displayLabel(field)); err != nil {
			return err
		}
		for _, child := range field.Nested {
			if err := r.promptField(ctx, child, state, options); err != nil {
				return err
			}
		}
		return nil
	}

	value, ok := state.Value(field.Path)
	if !ok {
		value = field.Default
	}
	editor := editors.For(field)
	if field.ReadOnly {
		return r.driver.Info(ctx, fmt.Sprintf("%s%s (read-only)", r.theme.InfoPrefix, displayLabel(field)))
	}

	var err error
	switch e := editor.(type) {
	case *editors.HourMinute:
		err = r.promptHourMinute(ctx, field, e.View(field.Path, value).(editors.HourMinuteView), state)
	case *editors.SetPoint:
		err = r.promptSetPoint(ctx, field, e.View(field.Path, value).(editors.SetPointView), state)
	case *editors.SelectBit:
		err = r.promptSelectBit(ctx, field, e.View(field.Path, value).(editors.SelectBitView), state)
	case *editors.Plain:
		err = r.promptPlain(ctx, field, e.View(field.Path, value).(editors.PlainView), state)
	default:
		return fmt.Errorf("tui: field %s: unsupported editor %s", field.Path, editor.Widget())
	}
	if err != nil {
		return err
	}

	if decoded, ok := editor.Decode(field.Path, state.Inputs()); ok {
		state.Set(field.Path, decoded)
	}
	return nil
}

// promptDisable asks whether the register should hold its disabled value.
func (r *Renderer) promptDisable(ctx context.Context, field model.Field, name string, current bool, state *State) (bool, error) {
	disable, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Disable %s?", displayLabel(field)),
		Default: current,
		Help:    field.Description,
	})
	if err != nil {
		return false, err
	}
	if disable {
		state.inputs.Set(name, "on")
	}
	return disable, nil
}

func (r *Renderer) promptHourMinute(ctx context.Context, field model.Field, view editors.HourMinuteView, state *State) error {
	if view.ShowDisable {
		disable, err := r.promptDisable(ctx, field, view.DisabledName, view.Disabled, state)
		if err != nil || disable {
			return err
		}
	}
	label := displayLabel(field)
	hours, err := r.promptNumber(ctx, label+" (hours)", field.Description, strconv.Itoa(view.Hours), view.HoursBox, true)
	if err != nil {
		return err
	}
	minutes, err := r.promptNumber(ctx, label+" (minutes)", field.Description, strconv.Itoa(view.Minutes), view.MinutesBox, true)
	if err != nil {
		return err
	}
	state.inputs.Set(view.HoursName, hours)
	state.inputs.Set(view.MinutesName, minutes)
	return nil
}

func (r *Renderer) promptSetPoint(ctx context.Context, field model.Field, view editors.SetPointView, state *State) error {
	if view.ShowDisable {
		disable, err := r.promptDisable(ctx, field, view.DisabledName, view.Hidden, state)
		if err != nil || disable {
			return err
		}
	}
	label := displayLabel(field)
	if unit := field.UIHints["unit"]; unit != "" {
		label = fmt.Sprintf("%s (%s)", label, unit)
	}
	text, err := r.promptNumber(ctx, label, field.Description, view.Text, view.Box, true)
	if err != nil {
		return err
	}
	state.inputs.Set(view.Name, text)
	return nil
}

func (r *Renderer) promptSelectBit(ctx context.Context, field model.Field, view editors.SelectBitView, state *State) error {
	labels := make([]string, len(view.Options))
	var defaults []int
	for idx, option := range view.Options {
		labels[idx] = option.Label
		if option.Checked {
			defaults = append(defaults, idx)
		}
	}
	chosen, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(field),
		Options:  labels,
		Defaults: defaults,
		Help:     field.Description,
		PageSize: len(labels),
	})
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(chosen))
	for _, idx := range chosen {
		if idx >= 0 && idx < len(view.Options) {
			keys = append(keys, view.Options[idx].Key)
		}
	}
	state.inputs[view.Name] = keys
	return nil
}

func (r *Renderer) promptPlain(ctx context.Context, field model.Field, view editors.PlainView, state *State) error {
	label := displayLabel(field)
	switch view.InputType {
	case "checkbox":
		on, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: view.Checked, Help: field.Description})
		if err != nil {
			return err
		}
		if on {
			state.inputs.Set(view.Name, "on")
		}
		return nil
	case "select":
		options := make([]string, len(view.Choices))
		current := 0
		for idx, choice := range view.Choices {
			options[idx] = choice.Label
			if choice.Selected {
				current = idx
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: current, Help: field.Description})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(view.Choices) {
			state.inputs.Set(view.Name, view.Choices[idx].Value)
		}
		return nil
	case "number":
		text, err := r.promptNumber(ctx, label, field.Description, view.Value, view.Box, view.Required)
		if err != nil {
			return err
		}
		if text != "" {
			state.inputs.Set(view.Name, text)
		}
		return nil
	default:
		for {
			text, err := r.driver.Input(ctx, InputConfig{Message: label, Default: view.Value, Help: field.Description})
			if err != nil {
				return err
			}
			text = strings.TrimSpace(text)
			if text == "" && view.Required {
				if err := r.invalid(ctx, label, "required"); err != nil {
					return err
				}
				continue
			}
			if text != "" {
				state.inputs.Set(view.Name, text)
			}
			return nil
		}
	}
}

// promptNumber re-prompts until the answer parses and sits inside box. An
// empty answer is accepted only when required is false.
func (r *Renderer) promptNumber(ctx context.Context, message, help, current string, box editors.Box, required bool) (string, error) {
	for {
		text, err := r.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: help})
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" && !required {
			return "", nil
		}
		if reason := checkNumber(text, box); reason != "" {
			if err := r.invalid(ctx, message, reason); err != nil {
				return "", err
			}
			continue
		}
		return text, nil
	}
}

func (r *Renderer) invalid(ctx context.Context, label, reason string) error {
	return r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, label, reason))
}

func checkNumber(text string, box editors.Box) string {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return "not a number"
	}
	if min, err := strconv.ParseFloat(box.Min, 64); err == nil && value < min {
		return "must be at least " + box.Min
	}
	if max, err := strconv.ParseFloat(box.Max, 64); err == nil && value > max {
		return "must be at most " + box.Max
	}
	return ""
}

func (r *Renderer) serialize(state *State) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(state.Inputs().Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(state.Values())), nil
	default:
		payload, err := json.Marshal(state.Values())
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return payload, nil
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s = %v\n", prefix, v)
		}
	}
}
