package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla/components"
)

// WithThemeSelector resolves theme/variant choices through selector before
// rendering. Requests that carry RenderOptions.Theme skip selection.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request names
// neither.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithThemeFallbacks replaces the partials used for keys a theme does not
// override.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = copyStrings(fallbacks)
	}
}

func defaultThemeFallbacks() map[string]string {
	return components.DefaultPartials()
}

func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if strings.TrimSpace(name) == "" {
		name = o.themeName
	}
	if strings.TrimSpace(variant) == "" {
		variant = o.themeVariant
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	return rendererConfig(selection, fallbacks), nil
}

// rendererConfig flattens a selection into what renderers consume. Variant
// tokens, templates and asset files override the manifest's; every token
// becomes a --token CSS variable.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: copyStrings(fallbacks),
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	var (
		prefix string
		files  = map[string]string{}
	)
	if manifest := selection.Manifest; manifest != nil {
		mergeStrings(cfg.Tokens, manifest.Tokens)
		mergeStrings(cfg.Partials, manifest.Templates)
		prefix = manifest.Assets.Prefix
		mergeStrings(files, manifest.Assets.Files)

		if variant, ok := manifest.Variants[selection.Variant]; ok {
			mergeStrings(cfg.Tokens, variant.Tokens)
			mergeStrings(cfg.Partials, variant.Templates)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
			mergeStrings(files, variant.Assets.Files)
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file := strings.TrimSpace(files[key])
		switch {
		case file == "":
			return ""
		case strings.HasPrefix(file, "/"), strings.Contains(file, "://"), prefix == "":
			return file
		default:
			return prefix + "/" + strings.TrimLeft(file, "/")
		}
	}
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		if strings.TrimSpace(value) != "" {
			dst[key] = value
		}
	}
}

func copyStrings(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
