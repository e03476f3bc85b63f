package model

import "fmt"

// Decorator adjusts a built form model in place: widget resolution and UI
// schema overlays are both decorators.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Chain runs decorators in order and stops at the first error.
type Chain []Decorator

func (c Chain) Decorate(form *FormModel) error {
	for idx, decorator := range c {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("model: decorator %d: %w", idx, err)
		}
	}
	return nil
}
