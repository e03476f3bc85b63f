package jsonschema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxRefDepth bounds chains of $ref pointing at other $refs.
const DefaultMaxRefDepth = 32

var (
	// ErrExternalRef is returned for $ref values outside the document.
	ErrExternalRef = errors.New("jsonschema: only local $ref values are supported")
	// ErrRefCycle is returned when a $ref eventually points at itself.
	ErrRefCycle = errors.New("jsonschema: $ref cycle")
)

// refResolver inlines local $ref pointers. Sibling keys next to a $ref
// override the keys of the referenced schema, matching json-editor.
type refResolver struct {
	root     map[string]any
	maxDepth int
}

func (r *refResolver) resolve(node any, path string, stack []string) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		if ref, ok := typed["$ref"].(string); ok {
			return r.resolveRef(typed, ref, path, stack)
		}
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			if path == "#" && isDefinitionsKey(key) {
				continue
			}
			resolved, err := r.resolve(value, path+"/"+escapeJSONPointer(key), stack)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for idx, value := range typed {
			resolved, err := r.resolve(value, path+"/"+strconv.Itoa(idx), stack)
			if err != nil {
				return nil, err
			}
			out[idx] = resolved
		}
		return out, nil
	default:
		return node, nil
	}
}

func (r *refResolver) resolveRef(node map[string]any, ref, path string, stack []string) (any, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("%w: %q at %s", ErrExternalRef, ref, path)
	}
	for _, seen := range stack {
		if seen == ref {
			return nil, fmt.Errorf("%w: %s -> %s", ErrRefCycle, strings.Join(stack, " -> "), ref)
		}
	}
	if len(stack) >= r.maxDepth {
		return nil, fmt.Errorf("jsonschema: $ref depth exceeds %d at %s", r.maxDepth, path)
	}

	target, err := lookupPointer(r.root, ref)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: resolve %q at %s: %w", ref, path, err)
	}
	resolved, err := r.resolve(target, ref, append(append([]string(nil), stack...), ref))
	if err != nil {
		return nil, err
	}

	base, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("jsonschema: %q does not point at a schema object", ref)
	}
	merged := make(map[string]any, len(base)+len(node))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range node {
		if key == "$ref" {
			continue
		}
		sibling, err := r.resolve(value, path+"/"+escapeJSONPointer(key), stack)
		if err != nil {
			return nil, err
		}
		merged[key] = sibling
	}
	return merged, nil
}

func lookupPointer(root map[string]any, ref string) (any, error) {
	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("anchors are not supported")
	}

	var current any = root
	for _, token := range strings.Split(pointer[1:], "/") {
		token = unescapeJSONPointer(token)
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[token]
			if !ok {
				return nil, fmt.Errorf("segment %q not found", token)
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("index %q out of range", token)
			}
			current = typed[idx]
		default:
			return nil, fmt.Errorf("segment %q is not traversable", token)
		}
	}
	return current, nil
}

func isDefinitionsKey(key string) bool {
	return key == "definitions" || key == "$defs"
}

func escapeJSONPointer(value string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(value)
}

func unescapeJSONPointer(value string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(value)
}
