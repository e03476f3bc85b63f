package gotemplate

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var builtinFilters sync.Once

// registerBuiltinFilters installs the editor filters. pongo2 filters are
// process wide, so this runs once and leaves existing names alone.
func registerBuiltinFilters() {
	builtinFilters.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim":        trimFilter,
			"input_attrs": inputAttrsFilter,
			"css_vars":    cssVarsFilter,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

// RegisterFilter adds a process-wide filter. A name can be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		out, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	})
}

func trimFilter(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// inputAttrsFilter writes a number input box as type, min, max and step
// attributes, skipping empty ones.
func inputAttrsFilter(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	box, ok := in.Interface().(map[string]any)
	if !ok {
		return pongo2.AsSafeValue(""), nil
	}
	attrs := make([]string, 0, 4)
	for _, key := range []string{"type", "min", "max", "step"} {
		raw, present := box[key]
		if !present || raw == nil {
			continue
		}
		if value := strings.TrimSpace(fmt.Sprint(raw)); value != "" {
			attrs = append(attrs, fmt.Sprintf(`%s="%s"`, key, html.EscapeString(value)))
		}
	}
	return pongo2.AsSafeValue(strings.Join(attrs, " ")), nil
}

// cssVarsFilter writes the "--" custom properties of a map as an inline style,
// sorted by name.
func cssVarsFilter(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars, ok := in.Interface().(map[string]any)
	if !ok {
		return pongo2.AsSafeValue(""), nil
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		if strings.HasPrefix(name, "--") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var style strings.Builder
	for idx, name := range names {
		if idx > 0 {
			style.WriteString("; ")
		}
		style.WriteString(name + ": " + html.EscapeString(fmt.Sprint(vars[name])))
	}
	return pongo2.AsSafeValue(style.String()), nil
}
