package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formgen-ssi/internal/registry"
)

type plugin string

func (p plugin) Name() string { return string(p) }

type namer interface {
	Name() string
}

func TestSetRegisterAndLookup(t *testing.T) {
	set := registry.New[namer]("test: plugin")
	set.MustRegister(plugin("OpenAPI"))
	set.MustRegister(plugin("jsonschema"))

	got, err := set.Get(" openapi ")
	require.NoError(t, err)
	assert.Equal(t, "OpenAPI", got.Name())
	assert.True(t, set.Has("JSONSCHEMA"))
	assert.Equal(t, []string{"jsonschema", "openapi"}, set.List())

	items := set.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "jsonschema", items[0].Name())
}

func TestSetRejects(t *testing.T) {
	set := registry.New[namer]("test: plugin")
	set.MustRegister(plugin("vanilla"))

	assert.EqualError(t, set.Register(plugin("Vanilla")), `test: plugin "vanilla" already registered`)
	assert.EqualError(t, set.Register(plugin("  ")), "test: plugin name is required")
	assert.EqualError(t, set.Register(nil), "test: plugin is required")

	_, err := set.Get("xml")
	assert.EqualError(t, err, `test: plugin "xml" not found`)
	_, err = set.Get("")
	assert.EqualError(t, err, "test: plugin name is required")

	assert.Panics(t, func() { set.MustRegister(plugin("vanilla")) })
}
