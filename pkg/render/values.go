package render

import "strings"

// LookupValue returns the value stored for a field path. The first path
// segment names the form root and is skipped: root.zone.heatDelay reads
// values["zone"]["heatDelay"].
func LookupValue(values map[string]any, path string) (any, bool) {
	segments := valueSegments(path)
	if len(segments) == 0 || values == nil {
		return nil, false
	}

	current := values
	for idx, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, false
		}
		if idx == len(segments)-1 {
			return value, true
		}
		next, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// SetValue stores value under a field path, creating intermediate objects
// and replacing non-object values found on the way.
func SetValue(values map[string]any, path string, value any) {
	segments := valueSegments(path)
	if len(segments) == 0 || values == nil {
		return
	}

	current := values
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

func valueSegments(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	if len(parts) < 2 {
		return nil
	}
	return parts[1:]
}
