package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const (
	extensionNamespace = "x-formgen"
	editorOptionsKey   = "options"
)

// controllerKeys folds the spellings schemas use for controller options onto
// the canonical metadata keys.
var controllerKeys = map[string]string{
	"showdisablecheckbox":  MetadataShowDisableCheckBox,
	"disabledvalue":        MetadataDisabledValue,
	"step":                 MetadataStep,
	"implieddecimalpoints": MetadataImpliedDecimalPoints,
	"propertyorder":        MetadataPropertyOrder,
	"order":                MetadataPropertyOrder,
}

var uiHintKeys = map[string]string{
	"widget":      "widget",
	"helptext":    "helpText",
	"infotext":    "helpText",
	"label":       "label",
	"placeholder": "placeholder",
	"cssclass":    "cssClass",
	"hidelabel":   "hideLabel",
	"inputtype":   "inputType",
	"unit":        "unit",
	"compact":     "compact",
}

// ParseExtensions extracts metadata and UI hints from a schema node's
// extensions. Controller options may sit at the top level (json-editor),
// inside the json-editor "options" object, under x-formgen, or as
// x-formgen-<key>; later sources win in that order.
func ParseExtensions(ext map[string]any) (map[string]string, map[string]string) {
	if len(ext) == 0 {
		return nil, nil
	}
	metadata := make(map[string]string)
	hints := make(map[string]string)

	for _, key := range sortedAnyKeys(ext) {
		if canonical, ok := controllerKeys[foldKey(key)]; ok {
			setCanonical(metadata, canonical, ext[key])
		}
	}
	if options, ok := ext[editorOptionsKey].(map[string]any); ok {
		absorb(metadata, hints, options, false)
	}
	if nested, ok := ext[extensionNamespace].(map[string]any); ok {
		absorb(metadata, hints, nested, true)
	}
	prefixed := make(map[string]any)
	for key, value := range ext {
		if strings.HasPrefix(key, extensionNamespace+"-") {
			prefixed[strings.TrimPrefix(key, extensionNamespace+"-")] = value
		}
	}
	absorb(metadata, hints, prefixed, true)

	if len(metadata) == 0 {
		metadata = nil
	}
	if len(hints) == 0 {
		hints = nil
	}
	return metadata, hints
}

// absorb copies controller options and UI hints out of values. With keepAll
// every other scalar also lands in metadata under its own name.
func absorb(metadata, hints map[string]string, values map[string]any, keepAll bool) {
	for _, key := range sortedAnyKeys(values) {
		value := values[key]
		folded := foldKey(key)
		if folded == "enum" || folded == "enumtitles" {
			continue
		}
		if canonical, ok := controllerKeys[folded]; ok {
			setCanonical(metadata, canonical, value)
			continue
		}
		if canonical, ok := uiHintKeys[folded]; ok {
			setCanonical(hints, canonical, value)
			continue
		}
		if keepAll {
			setCanonical(metadata, key, value)
		}
	}
}

func setCanonical(target map[string]string, key string, value any) {
	if str, ok := CanonicalizeExtensionValue(value); ok {
		target[key] = str
	}
}

// EnumTitles returns the enum_titles list of a node, from its json-editor
// options or from x-formgen.
func EnumTitles(ext map[string]any) []string {
	for _, source := range []string{extensionNamespace, editorOptionsKey} {
		nested, ok := ext[source].(map[string]any)
		if !ok {
			continue
		}
		for key, value := range nested {
			if foldKey(key) != "enumtitles" {
				continue
			}
			if list, ok := value.([]any); ok {
				titles := make([]string, len(list))
				for idx, item := range list {
					if item != nil {
						titles[idx] = fmt.Sprint(item)
					}
				}
				return titles
			}
		}
	}
	return nil
}

// extensionEnum returns x-formgen.enum, used when an integer bit register
// declares its members without an items schema.
func extensionEnum(ext map[string]any) []any {
	nested, ok := ext[extensionNamespace].(map[string]any)
	if !ok {
		return nil
	}
	list, _ := nested["enum"].([]any)
	return list
}

// CanonicalizeExtensionValue turns an extension value into a stable string.
// Returns false for values that have no deterministic representation.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case json.Number:
		return v.String(), true
	case map[string]any, []any, []string, map[string]string:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}

func foldKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func sortedAnyKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
