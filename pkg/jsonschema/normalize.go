package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

// Keywords the IR models directly. Everything else on a node is kept as an
// extension so controller options (ShowDisableCheckBox, disabledValue,
// impliedDecimalPoints, step, options, x-formgen) reach the model builder.
var coreKeywords = map[string]struct{}{
	"$schema":          {},
	"$id":              {},
	"id":               {},
	"$ref":             {},
	"definitions":      {},
	"$defs":            {},
	"type":             {},
	"format":           {},
	"title":            {},
	"description":      {},
	"default":          {},
	"enum":             {},
	"required":         {},
	"properties":       {},
	"items":            {},
	"minimum":          {},
	"maximum":          {},
	"exclusiveMinimum": {},
	"exclusiveMaximum": {},
	"readOnly":         {},
	"readonly":         {},
}

func schemaFromNode(node any, path string) (schema.Schema, error) {
	payload, ok := node.(map[string]any)
	if !ok {
		return schema.Schema{}, fmt.Errorf("jsonschema: schema must be an object at %s", path)
	}

	out := schema.Schema{
		Format:      strings.TrimSpace(readString(payload, "format")),
		Title:       strings.TrimSpace(readString(payload, "title")),
		Description: strings.TrimSpace(readString(payload, "description")),
		Default:     payload["default"],
		Extensions:  extensionsOf(payload),
	}

	typ, err := readType(payload["type"], path)
	if err != nil {
		return schema.Schema{}, err
	}
	out.Type = typ

	if raw, ok := payload["enum"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: enum must be an array at %s", path)
		}
		out.Enum = append([]any(nil), list...)
	}

	if raw, ok := payload["required"]; ok {
		list, ok := raw.([]any)
		if ok {
			for idx, item := range list {
				name, ok := item.(string)
				if !ok || strings.TrimSpace(name) == "" {
					return schema.Schema{}, fmt.Errorf("jsonschema: required[%d] must be a string at %s", idx, path)
				}
				out.Required = append(out.Required, name)
			}
		} else if _, isBool := raw.(bool); !isBool {
			return schema.Schema{}, fmt.Errorf("jsonschema: required must be an array at %s", path)
		}
	}

	if err := readBounds(payload, &out, path); err != nil {
		return schema.Schema{}, err
	}
	out.ReadOnly = readBool(payload, "readOnly") || readBool(payload, "readonly")

	if raw, ok := payload["properties"]; ok {
		props, ok := raw.(map[string]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: properties must be an object at %s", path)
		}
		out.Properties = make(map[string]schema.Schema, len(props))
		for _, key := range sortedKeys(props) {
			child, err := schemaFromNode(props[key], path+"/properties/"+escapeJSONPointer(key))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Properties[key] = child
			// Older json-editor schemas mark required on the property itself.
			if childMap, ok := props[key].(map[string]any); ok && readBool(childMap, "required") && !contains(out.Required, key) {
				out.Required = append(out.Required, key)
			}
		}
	}

	if raw, ok := payload["items"]; ok {
		switch typed := raw.(type) {
		case map[string]any:
			items, err := schemaFromNode(typed, path+"/items")
			if err != nil {
				return schema.Schema{}, err
			}
			out.Items = &items
		case []any:
			return schema.Schema{}, fmt.Errorf("jsonschema: tuple items are not supported at %s", path)
		default:
			return schema.Schema{}, fmt.Errorf("jsonschema: items must be an object at %s", path)
		}
	}

	return out, nil
}

// readBounds accepts both the draft-04 boolean exclusive flags and the numeric
// form used from draft-06 on.
func readBounds(payload map[string]any, out *schema.Schema, path string) error {
	for _, bound := range []struct {
		key, exclusiveKey string
		target            **float64
		flag              *bool
	}{
		{"minimum", "exclusiveMinimum", &out.Minimum, &out.ExclusiveMinimum},
		{"maximum", "exclusiveMaximum", &out.Maximum, &out.ExclusiveMaximum},
	} {
		if raw, ok := payload[bound.key]; ok {
			value, ok := transcode.Number(raw)
			if !ok {
				return fmt.Errorf("jsonschema: %s must be a number at %s", bound.key, path)
			}
			*bound.target = &value
		}
		raw, ok := payload[bound.exclusiveKey]
		if !ok {
			continue
		}
		if flag, isBool := raw.(bool); isBool {
			*bound.flag = flag
			continue
		}
		value, ok := transcode.Number(raw)
		if !ok {
			return fmt.Errorf("jsonschema: %s must be a number or boolean at %s", bound.exclusiveKey, path)
		}
		*bound.target = &value
		*bound.flag = true
	}
	return nil
}

func readType(raw any, path string) (string, error) {
	switch typed := raw.(type) {
	case nil:
		return "", nil
	case string:
		return checkType(strings.TrimSpace(typed), path)
	case []any:
		for _, entry := range typed {
			name, ok := entry.(string)
			if !ok {
				return "", fmt.Errorf("jsonschema: type entries must be strings at %s", path)
			}
			if name != "null" {
				return checkType(name, path)
			}
		}
		return "null", nil
	default:
		return "", fmt.Errorf("jsonschema: type must be a string or array at %s", path)
	}
}

func checkType(name, path string) (string, error) {
	switch name {
	case "object", "array", "string", "integer", "number", "boolean", "null":
		return name, nil
	default:
		return "", fmt.Errorf("jsonschema: unsupported type %q at %s", name, path)
	}
}

func extensionsOf(payload map[string]any) map[string]any {
	var ext map[string]any
	for key, value := range payload {
		if _, core := coreKeywords[key]; core {
			continue
		}
		if ext == nil {
			ext = make(map[string]any)
		}
		ext[key] = value
	}
	return ext
}

func readString(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

func readBool(payload map[string]any, key string) bool {
	value, _ := payload[key].(bool)
	return value
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
