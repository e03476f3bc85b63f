package components

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	rendertemplate "github.com/goliatone/go-formgen-ssi/pkg/render/template"
)

// Renderer writes the control markup of one field into buf.
type Renderer func(buf *bytes.Buffer, field model.Field, data ComponentData) error

// ComponentData carries the per-field state a component renders from.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// View is the editor display state (editors.HourMinuteView, ...).
	View any
	// ControlID is the id of the primary control, the target of the label.
	ControlID string
	Messages  []string
	// ThemePartials maps partial keys (forms.hour-minute) to template names.
	ThemePartials map[string]string
	RenderChild   func(field model.Field) (string, error)
}

// Descriptor bundles a component renderer with the stylesheets it needs.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
}

// Registry maps component names to descriptors. Names are case-insensitive.
type Registry struct {
	mu    sync.RWMutex
	table map[string]Descriptor
}

func New() *Registry {
	return &Registry{table: make(map[string]Descriptor)}
}

// Clone copies the registry so a renderer can override single components.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{table: maps.Clone(r.table)}
}

// Register sets the descriptor for name, replacing any earlier one.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	key := strings.ToLower(strings.TrimSpace(name))
	switch {
	case key == "":
		return fmt.Errorf("components: component name is required")
	case descriptor.Renderer == nil:
		return fmt.Errorf("components: renderer for %q is nil", key)
	}
	descriptor.Name = key
	descriptor.Stylesheets = slices.Clone(descriptor.Stylesheets)

	r.mu.Lock()
	r.table[key] = descriptor
	r.mu.Unlock()
	return nil
}

func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	descriptor, ok := r.table[strings.ToLower(strings.TrimSpace(name))]
	r.mu.RUnlock()
	descriptor.Stylesheets = slices.Clone(descriptor.Stylesheets)
	return descriptor, ok
}

// Names lists the registered components in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.table))
}

// Stylesheets returns the stylesheets the named components need, each once,
// in order of first use.
func (r *Registry) Stylesheets(names []string) []string {
	var hrefs []string
	for _, name := range names {
		descriptor, ok := r.Lookup(name)
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href != "" && !slices.Contains(hrefs, href) {
				hrefs = append(hrefs, href)
			}
		}
	}
	return hrefs
}
