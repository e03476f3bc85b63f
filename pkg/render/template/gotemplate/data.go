package gotemplate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext turns template data into a pongo2 context. Data must normalise to
// an object; blank top-level keys are dropped.
func toContext(data any) (pongo2.Context, error) {
	value, err := plain(data)
	if err != nil {
		return nil, err
	}
	switch obj := value.(type) {
	case nil:
		return pongo2.Context{}, nil
	case map[string]any:
		view := make(pongo2.Context, len(obj))
		for key, item := range obj {
			if key = strings.TrimSpace(key); key != "" {
				view[key] = item
			}
		}
		return view, nil
	default:
		return nil, fmt.Errorf("template data must be an object, got %T", data)
	}
}

// plain reduces value to maps, slices, strings, bools and numbers. Whole
// numbers become int64 so register values print without a fraction. Functions
// pass through untouched for use as template helpers.
func plain(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64:
		return v, nil
	case float64:
		return whole(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return whole(f), nil
	case pongo2.Context:
		return plainMap(v)
	case map[string]any:
		return plainMap(v)
	case []any:
		return plainList(v)
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}

	decoded, err := roundTrip(value)
	if err != nil {
		return nil, err
	}
	return plain(decoded)
}

func plainMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := plain(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

func plainList(in []any) ([]any, error) {
	out := make([]any, len(in))
	for idx, value := range in {
		converted, err := plain(value)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", idx, err)
		}
		out[idx] = converted
	}
	return out, nil
}

func whole(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v)
	}
	return v
}

func roundTrip(value any) (any, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
