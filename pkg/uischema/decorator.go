package uischema

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

const layoutOrderKey = "layout.order"

// Decorator applies overlays from a Store to form models.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by store. A nil or empty store makes
// it a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate implements model.Decorator. Forms without an overlay are left
// untouched; an overlay naming a field the form does not have is an error.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	overlay, ok := d.store.Overlay(form.ID)
	if !ok {
		return nil
	}

	applyFormConfig(form, overlay.Form)
	return applyFieldConfig(form, overlay)
}

func applyFormConfig(form *model.FormModel, cfg FormConfig) {
	if cfg.Title != "" {
		form.Title = cfg.Title
	}
	if cfg.Description != "" {
		form.Description = cfg.Description
	}
	form.UIHints = mergeStringMap(form.UIHints, cfg.UIHints)
}

func applyFieldConfig(form *model.FormModel, overlay Overlay) error {
	refs := make(map[string]*model.Field)
	collectFieldRefs(form.Fields, "", refs)

	orders := make(map[string]int)
	// Sorted so the reported error is stable when several keys are unknown.
	paths := make([]string, 0, len(overlay.Fields))
	for path := range overlay.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		cfg := overlay.Fields[path]
		field, ok := refs[path]
		if !ok {
			return fmt.Errorf("uischema: form %q (file %s) references unknown field %q", overlay.ID, overlay.Source, cfg.OriginalPath)
		}
		if cfg.Order != nil {
			orders[path] = *cfg.Order
			field.Metadata = ensureMap(field.Metadata)
			field.Metadata[layoutOrderKey] = strconv.Itoa(*cfg.Order)
		}
		applyFieldCopy(field, cfg)
		mergeFieldMaps(field, cfg)
	}

	if len(orders) > 0 {
		reorderFields(form.Fields, "", orders)
	}
	return nil
}

func applyFieldCopy(field *model.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	if cfg.ReadOnly != nil {
		field.ReadOnly = *cfg.ReadOnly
	}
	if len(cfg.EnumTitles) > 0 {
		// Select-bit registers carry their members on the item template.
		if field.Items != nil && len(field.Items.Enum) > 0 {
			field.Items.EnumTitles = append([]string(nil), cfg.EnumTitles...)
		} else {
			field.EnumTitles = append([]string(nil), cfg.EnumTitles...)
		}
	}

	hints := map[string]string{
		"placeholder": cfg.Placeholder,
		"widget":      cfg.Widget,
		"unit":        cfg.Unit,
		"cssClass":    cfg.CSSClass,
		"helpText":    SanitizeHelpText(cfg.HelpText),
	}
	for key, value := range hints {
		if value == "" {
			continue
		}
		field.UIHints = ensureMap(field.UIHints)
		field.UIHints[key] = value
	}
}

func mergeFieldMaps(field *model.Field, cfg FieldConfig) {
	if len(cfg.Options) > 0 {
		metadata, hints := model.ParseUIExtensions(cfg.Options)
		field.Metadata = mergeStringMap(field.Metadata, metadata)
		field.UIHints = mergeStringMap(field.UIHints, hints)
	}
	field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
	field.UIHints = mergeStringMap(field.UIHints, cfg.UIHints)
}

// reorderFields moves explicitly ordered siblings first, by ascending order,
// and keeps the rest in their original sequence.
func reorderFields(fields []model.Field, parentPath string, orders map[string]int) {
	sort.SliceStable(fields, func(i, j int) bool {
		orderI, okI := orders[joinPath(parentPath, fields[i].Name)]
		orderJ, okJ := orders[joinPath(parentPath, fields[j].Name)]
		switch {
		case okI && okJ:
			return orderI < orderJ
		case okI != okJ:
			return okI
		default:
			return false
		}
	})
	for idx := range fields {
		path := joinPath(parentPath, fields[idx].Name)
		if len(fields[idx].Nested) > 0 {
			reorderFields(fields[idx].Nested, path, orders)
		}
		if items := fields[idx].Items; items != nil && len(items.Nested) > 0 {
			reorderFields(items.Nested, joinPath(path, "items"), orders)
		}
	}
}

func collectFieldRefs(fields []model.Field, parentPath string, refs map[string]*model.Field) {
	for idx := range fields {
		field := &fields[idx]
		path := joinPath(parentPath, field.Name)
		refs[path] = field

		if len(field.Nested) > 0 {
			collectFieldRefs(field.Nested, path, refs)
		}
		if field.Items != nil {
			itemPath := joinPath(path, "items")
			refs[itemPath] = field.Items
			if len(field.Items.Nested) > 0 {
				collectFieldRefs(field.Items.Nested, itemPath, refs)
			}
		}
	}
}

func ensureMap(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
