package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

// Widget identifiers resolved by the built-in matchers.
const (
	WidgetHourMinute = "hour-minute"
	WidgetSetPoint   = "set-point"
	WidgetSelectBit  = "select-bit"
	WidgetToggle     = "toggle"
	WidgetSelect     = "select"
)

// Schema formats that select the controller editors.
const (
	FormatHourMinute = "SSI_HourMinuteToInt"
	FormatSetPoint   = "ssiSetPoint"
	FormatSelectBit  = "ssiSelectBit"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry picks a widget per field. An explicit widget hint always wins;
// otherwise the highest priority matching rule does, with ties going to the
// earliest registration.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry returns a registry with the controller editors and the
// generic toggle/select matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher. Blank names and nil matchers are ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	trimmed := strings.TrimSpace(name)
	if r == nil || matcher == nil || trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{name: trimmed, priority: priority, match: matcher, order: len(r.rules)})
}

// Resolve returns the widget for field.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator by writing the resolved widget to
// UIHints["widget"] on every field, nested fields and item templates
// included.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for idx := range form.Fields {
		r.decorateField(&form.Fields[idx])
	}
	return nil
}

func (r *Registry) decorateField(field *model.Field) {
	if widget, ok := r.Resolve(*field); ok {
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		field.UIHints["widget"] = widget
	}
	if field.Items != nil {
		item := *field.Items
		r.decorateField(&item)
		field.Items = &item
	}
	for idx := range field.Nested {
		r.decorateField(&field.Nested[idx])
	}
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.UIHints["widget"]); widget != "" {
		return widget
	}
	return strings.TrimSpace(field.Metadata["widget"])
}

func hasFormat(field model.Field, format string) bool {
	return strings.EqualFold(strings.TrimSpace(field.Format), format)
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetHourMinute, 100, func(field model.Field) bool {
		return hasFormat(field, FormatHourMinute)
	})

	r.Register(WidgetSetPoint, 90, func(field model.Field) bool {
		return hasFormat(field, FormatSetPoint)
	})

	r.Register(WidgetSelectBit, 80, func(field model.Field) bool {
		if hasFormat(field, FormatSelectBit) {
			return true
		}
		return field.Type == model.FieldTypeInteger && field.Items != nil && len(field.Items.Enum) > 0
	})

	r.Register(WidgetToggle, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetSelect, 40, func(field model.Field) bool {
		if field.Type == model.FieldTypeArray || field.Type == model.FieldTypeObject {
			return false
		}
		return len(field.Enum) > 0
	})
}
