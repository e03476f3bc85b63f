package tui

import (
	"net/url"

	"github.com/goliatone/go-formgen-ssi/pkg/render"
)

// State tracks the stored values being edited and the inputs collected so
// far, the latter named the way the HTML form names them.
type State struct {
	values map[string]any
	inputs url.Values
}

// NewState seeds the state with a deep copy of prefill.
func NewState(prefill map[string]any) *State {
	values, _ := deepCopy(prefill).(map[string]any)
	if values == nil {
		values = make(map[string]any)
	}
	return &State{values: values, inputs: make(url.Values)}
}

// Values returns the current value map, keyed below the form root.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Inputs returns the collected form inputs.
func (s *State) Inputs() url.Values {
	if s == nil {
		return nil
	}
	return s.inputs
}

// Value resolves a field path (root.fan.speed) in the value map.
func (s *State) Value(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return render.LookupValue(s.values, path)
}

// Set stores value at a field path.
func (s *State) Set(path string, value any) {
	if s == nil {
		return
	}
	render.SetValue(s.values, path, value)
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
