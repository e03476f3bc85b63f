package model

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

var (
	errFormIDMissing       = errors.New("model builder: form id is required")
	errFormEndpointMissing = errors.New("model builder: form endpoint is required")
	errFormMethodMissing   = errors.New("model builder: form method is required")
)

func validateForm(form schema.Form) error {
	switch {
	case form.ID == "":
		return errFormIDMissing
	case form.Endpoint == "":
		return errFormEndpointMissing
	case form.Method == "":
		return errFormMethodMissing
	}
	if form.Schema.Type != "" && form.Schema.Type != "object" {
		return fmt.Errorf("model builder: form %q: root schema must be an object", form.ID)
	}
	if err := validateSchema(form.Schema, "root"); err != nil {
		return fmt.Errorf("model builder: form %q: %w", form.ID, err)
	}
	return nil
}

func validateSchema(node schema.Schema, path string) error {
	if node.Type == "array" && node.Items == nil {
		return fmt.Errorf("array %s requires items", path)
	}
	if node.Minimum != nil && node.Maximum != nil && *node.Minimum > *node.Maximum {
		return fmt.Errorf("%s: minimum %v exceeds maximum %v", path, *node.Minimum, *node.Maximum)
	}
	for name, child := range node.Properties {
		if err := validateSchema(child, path+"."+name); err != nil {
			return err
		}
	}
	if node.Items != nil {
		return validateSchema(*node.Items, path+".items")
	}
	return nil
}
