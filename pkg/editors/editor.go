package editors

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/widgets"
)

// Input name suffixes.
const (
	SuffixHours    = ".hours"
	SuffixMinutes  = ".minutes"
	SuffixDisabled = ".disabled"
)

// Editor converts between stored values and rendered state for one field.
type Editor interface {
	Widget() string
	// View returns the display state for value stored at path.
	View(path string, value any) any
	// Decode reads the inputs named after path and returns the value to store.
	// ok is false when the form carries no input for the field.
	Decode(path string, form url.Values) (value any, ok bool)
}

// IDFunc derives the DOM id of an auxiliary control (the disable checkbox)
// from the field path.
type IDFunc func(path string) string

type config struct {
	ids      IDFunc
	registry *widgets.Registry
}

// Option configures For.
type Option func(*config)

// WithIDFunc overrides the default "<path>.disable" checkbox ids.
func WithIDFunc(fn IDFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.ids = fn
		}
	}
}

// WithRegistry resolves widgets for fields that carry no widget hint.
func WithRegistry(reg *widgets.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

var defaultRegistry = widgets.NewRegistry()

// For returns the editor for field. The widget comes from UIHints["widget"]
// (set by the widget registry decorator) or is resolved on the fly. Fields
// without a controller widget get the plain editor.
func For(field model.Field, options ...Option) Editor {
	cfg := config{
		ids:      func(path string) string { return path + ".disable" },
		registry: defaultRegistry,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	widget := strings.TrimSpace(field.UIHints["widget"])
	if widget == "" && cfg.registry != nil {
		widget, _ = cfg.registry.Resolve(field)
	}

	switch widget {
	case widgets.WidgetHourMinute:
		return NewHourMinute(field, cfg.ids)
	case widgets.WidgetSetPoint:
		return NewSetPoint(field, cfg.ids)
	case widgets.WidgetSelectBit:
		return NewSelectBit(field)
	default:
		return NewPlain(field, widget)
	}
}

// checked reports whether a checkbox input was submitted as on.
func checked(form url.Values, name string) bool {
	switch strings.ToLower(strings.TrimSpace(form.Get(name))) {
	case "on", "true", "1", "yes", "checked":
		return true
	default:
		return false
	}
}

func present(form url.Values, names ...string) bool {
	for _, name := range names {
		if _, ok := form[name]; ok {
			return true
		}
	}
	return false
}
