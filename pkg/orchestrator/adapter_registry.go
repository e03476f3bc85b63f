package orchestrator

import (
	"github.com/goliatone/go-formgen-ssi/internal/registry"
	"github.com/goliatone/go-formgen-ssi/pkg/jsonschema"
	"github.com/goliatone/go-formgen-ssi/pkg/openapi"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// AdapterRegistry holds format adapters by case-insensitive name.
type AdapterRegistry struct {
	*registry.Set[schema.FormatAdapter]
}

func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{Set: registry.New[schema.FormatAdapter]("orchestrator: adapter")}
}

// DefaultAdapters registers the JSON Schema and OpenAPI adapters, both
// loading through loader.
func DefaultAdapters(loader schema.Loader) *AdapterRegistry {
	adapters := NewAdapterRegistry()
	adapters.MustRegister(jsonschema.NewAdapter(loader))
	adapters.MustRegister(openapi.NewAdapter(loader))
	return adapters
}

// Detect returns, in name order, every adapter that claims raw.
func (r *AdapterRegistry) Detect(src schema.Source, raw []byte) []schema.FormatAdapter {
	if r == nil || r.Set == nil {
		return nil
	}
	var claimed []schema.FormatAdapter
	for _, adapter := range r.Items() {
		if adapter.Detect(src, raw) {
			claimed = append(claimed, adapter)
		}
	}
	return claimed
}
