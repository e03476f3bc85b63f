package render

import "github.com/goliatone/go-formgen-ssi/internal/registry"

// Registry holds renderers by case-insensitive name.
type Registry struct {
	*registry.Set[Renderer]
}

func NewRegistry() *Registry {
	return &Registry{Set: registry.New[Renderer]("render: renderer")}
}
