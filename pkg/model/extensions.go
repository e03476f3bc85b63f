package model

import internalmodel "github.com/goliatone/go-formgen-ssi/internal/model"

// ParseUIExtensions extracts canonical metadata and UI hints from schema
// extensions. It returns nil maps when nothing is recognised.
func ParseUIExtensions(ext map[string]any) (map[string]string, map[string]string) {
	return internalmodel.ParseExtensions(ext)
}
