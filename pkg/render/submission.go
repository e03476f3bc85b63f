package render

import (
	"fmt"
	"sort"
	"strings"
)

// Submission is the outcome of decoding a posted form: the register values
// to store, as a nested object like RenderOptions.Values, plus any messages
// keyed by field path.
type Submission struct {
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Valid reports whether the submission carries no errors.
func (s Submission) Valid() bool {
	return len(s.Errors) == 0
}

// HiddenField is a hidden input emitted alongside the schema fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// RevisionField carries the stored revision of the values being edited so
// concurrent writers can be detected on submit.
func RevisionField(revision uint64) HiddenField {
	return Hidden(RevisionFieldName, revision)
}

// RevisionFieldName is the input name used by RevisionField.
const RevisionFieldName = "_revision"

// SortedHiddenFields drops unnamed fields, lets later fields win on name
// collisions and sorts by name.
func SortedHiddenFields(fields []HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		clean[name] = field.Value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
