package vanilla

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla/components"
)

func componentControlID(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return "fg-" + trimmed
}

// uniqueDisableID gives every disable checkbox a fresh id, so the same form
// rendered twice on one page keeps its labels apart.
func uniqueDisableID(path string) string {
	return path + "." + uuid.NewString() + ".disable"
}

var _ editors.IDFunc = uniqueDisableID

// sanitizeClassList drops tokens in the renderer's own namespace.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "ssiform-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// labelSupportsFor reports whether the component has a single control a
// label can point at. Bit registers and objects label a group instead.
func labelSupportsFor(componentName string) bool {
	switch strings.TrimSpace(componentName) {
	case components.NameSelectBit, components.NameObject:
		return false
	default:
		return true
	}
}

func componentHandlesLabel(componentName string) bool {
	return strings.TrimSpace(componentName) == components.NameObject
}
