package model

import (
	"github.com/goliatone/go-formgen-ssi/internal/model"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// Builder converts normalised forms into form models.
type Builder interface {
	Build(form schema.Form) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*model.Options)

// WithLabeler overrides the label derived from property names.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *model.Options) {
		opts.Labeler = labeler
	}
}

// WithRootPath changes the prefix of field paths (default "root").
func WithRootPath(root string) BuilderOption {
	return func(opts *model.Options) {
		opts.RootPath = root
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := model.Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(cfg)
}
