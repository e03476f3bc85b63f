package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

// ErrorMapping splits an error payload into field messages keyed by field
// path and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors appends extras to existing, trimming and dropping blanks
// and repeats.
func MergeFormErrors(existing []string, extras ...string) []string {
	return normalizeMessages(append(append([]string(nil), existing...), extras...))
}

// MapErrorPayload files each message under the field its key addresses. A
// key may be a field path (root.setPoint), a JSON pointer (/setPoint,
// #/body/setPoint) or a bracketed path (alarmMask[0]). Request wrappers,
// array indexes and the root segment are optional, and a key naming something
// below a field lands on that field. Anything else becomes a form-level
// message.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	index := indexPaths(form)
	fields := make(map[string][]string)
	for key, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		if path, ok := index.resolve(key); ok {
			fields[path] = append(fields[path], messages...)
		} else {
			mapping.Form = append(mapping.Form, messages...)
		}
	}
	if len(fields) > 0 {
		mapping.Fields = fields
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	return out
}

// Keys addressed at the whole form rather than a field.
var formLevelKeys = map[string]bool{
	"": true, ".": true, "/": true, "#": true, "$": true,
	"form": true, "base": true, "__all__": true,
	"non_field_errors": true, "non-field-errors": true,
}

// Leading segments that wrap the submitted values in API error payloads.
var wrapperSegments = map[string]bool{
	"body": true, "request": true, "payload": true, "data": true, "attributes": true,
}

type pathIndex struct {
	root  string
	paths map[string]bool
}

func indexPaths(form model.FormModel) pathIndex {
	index := pathIndex{root: model.DefaultRootPath, paths: make(map[string]bool)}
	form.Walk(func(field *model.Field) {
		if path := strings.TrimSpace(field.Path); path != "" {
			index.paths[path] = true
		}
	})
	for _, field := range form.Fields {
		if head, _, ok := strings.Cut(field.Path, "."); ok && head != "" {
			index.root = head
			break
		}
	}
	return index
}

// resolve returns the deepest field path any reading of key points into.
func (idx pathIndex) resolve(key string) (string, bool) {
	if formLevelKeys[strings.ToLower(strings.TrimSpace(key))] {
		return "", false
	}
	best := ""
	for _, candidate := range idx.readings(splitErrorKey(key)) {
		if path := idx.longestPrefix(candidate); depth(path) > depth(best) {
			best = path
		}
	}
	return best, best != ""
}

// readings lists the ways segments could name a field: as given, without
// wrappers, without array indexes, each with and without the root segment.
func (idx pathIndex) readings(segments []string) [][]string {
	if len(segments) == 0 {
		return nil
	}
	unwrapped := segments
	for len(unwrapped) > 0 && wrapperSegments[strings.ToLower(unwrapped[0])] {
		unwrapped = unwrapped[1:]
	}

	var out [][]string
	for _, base := range [][]string{segments, unwrapped, withoutIndexes(segments), withoutIndexes(unwrapped)} {
		if len(base) == 0 {
			continue
		}
		out = append(out, base)
		if base[0] != idx.root {
			out = append(out, append([]string{idx.root}, base...))
		}
	}
	return out
}

func (idx pathIndex) longestPrefix(segments []string) string {
	for end := len(segments); end > 0; end-- {
		if candidate := strings.Join(segments[:end], "."); idx.paths[candidate] {
			return candidate
		}
	}
	return ""
}

func depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, ".") + 1
}

// splitErrorKey breaks a pointer, dotted or bracketed key into segments and
// unescapes JSON pointer tokens.
func splitErrorKey(key string) []string {
	key = strings.TrimLeft(strings.TrimSpace(key), "#/.$")
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '.' || r == '/' || r == '[' || r == ']'
	})
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~"))
		}
	}
	return segments
}

func withoutIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err != nil {
			out = append(out, segment)
		}
	}
	return out
}
