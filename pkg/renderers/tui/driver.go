package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig describes a free text prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig describes a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig describes a pick-one or pick-many prompt over Options.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	// Defaults preselects options by index in a multi-select.
	Defaults []int
	Help     string
	PageSize int
}

// PromptDriver is the terminal seen by the renderer. Tests replace it with a
// scripted driver.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Info(ctx context.Context, msg string) error
}

// surveyDriver prompts on the controlling terminal and prints info lines to
// out.
type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver(out io.Writer) PromptDriver {
	return &surveyDriver{out: out}
}

// ask runs one survey prompt. Ctrl-C surfaces as ErrAborted.
func ask[T any](ctx context.Context, prompt survey.Prompt) (T, error) {
	var answer T
	if err := ctx.Err(); err != nil {
		return answer, err
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return answer, ErrAborted
		}
		return answer, err
	}
	return answer, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return ask[bool](ctx, &survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	label, err := ask[string](ctx, prompt)
	if err != nil {
		return 0, err
	}
	return slices.Index(cfg.Options, label), nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if preset := labelsAt(cfg.Options, cfg.Defaults); len(preset) > 0 {
		prompt.Default = preset
	}
	labels, err := ask[[]string](ctx, prompt)
	if err != nil {
		return nil, err
	}
	return positionsOf(cfg.Options, labels), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// positionsOf maps chosen labels back to option indexes in option order. A
// label shared by two options resolves to the first.
func positionsOf(options, labels []string) []int {
	var picked []int
	for idx, option := range options {
		if slices.Contains(labels, option) && slices.Index(options, option) == idx {
			picked = append(picked, idx)
		}
	}
	return picked
}

func labelsAt(options []string, indexes []int) []string {
	var labels []string
	for _, idx := range indexes {
		if idx >= 0 && idx < len(options) {
			labels = append(labels, options[idx])
		}
	}
	return labels
}
