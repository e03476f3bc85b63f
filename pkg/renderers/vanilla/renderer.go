package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-ssi/pkg/editors"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	rendertemplate "github.com/goliatone/go-formgen-ssi/pkg/render/template"
	"github.com/goliatone/go-formgen-ssi/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla/components"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	ids              editors.IDFunc
	inlineStyles     bool
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a template engine, bypassing the pongo2
// default.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithIDFunc overrides the random disable checkbox ids. Tests use it for
// stable output.
func WithIDFunc(fn editors.IDFunc) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.ids = fn
		}
	}
}

// WithInlineStyles toggles the embedded <style> block. It is on by default
// and skipped whenever the theme provides a stylesheet asset.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithSubmitLabel sets the text of the submit button.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer renders forms as plain HTML that submits without JavaScript.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	registry     *components.Registry
	ids          editors.IDFunc
	inlineStyles bool
	submitLabel  string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		inlineStyles: true,
		submitLabel:  "Save",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	if cfg.ids == nil {
		cfg.ids = uniqueDisableID
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:    templates,
		registry:     cfg.registry,
		ids:          cfg.ids,
		inlineStyles: cfg.inlineStyles,
		submitLabel:  cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCtx := buildThemeContext(options.Theme)
	fields := newComponentRenderer(r.templates, r.registry, themeCtx.Partials, options, r.ids)
	markup, err := fields.renderAll(form.Fields)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	method, override := formMethod(form.Method, options.Method)
	stylesheets := fields.stylesheets()
	inline := ""
	if href := themeCtx.asset(StylesheetAssetKey); href != "" {
		stylesheets = append([]string{href}, stylesheets...)
	} else if r.inlineStyles {
		inline = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form":              form,
		"method":            method,
		"method_override":   override,
		"fields":            markup,
		"hidden":            render.SortedHiddenFields(options.Hidden),
		"form_errors":       options.FormErrors,
		"stylesheets":       stylesheets,
		"stylesheet_inline": inline,
		"theme":             themeCtx,
		"submit_label":      r.submitLabel,
		"classes": map[string]string{
			"form":    ClassForm.String(),
			"header":  ClassHeader.String(),
			"errors":  ClassErrors.String(),
			"actions": ClassActions.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// formMethod maps the requested method onto what a browser form can send.
// Verbs other than GET and POST are posted with a _method override.
func formMethod(declared, requested string) (method, override string) {
	verb := strings.ToUpper(strings.TrimSpace(requested))
	if verb == "" {
		verb = strings.ToUpper(strings.TrimSpace(declared))
	}
	switch verb {
	case "", http.MethodPost:
		return "post", ""
	case http.MethodGet:
		return "get", ""
	default:
		return "post", verb
	}
}

type rendererTheme struct {
	Name     string            `json:"name"`
	Variant  string            `json:"variant"`
	Partials map[string]string `json:"partials,omitempty"`
	CSSVars  map[string]string `json:"cssVars,omitempty"`

	assetURL func(string) string
}

func (t rendererTheme) asset(key string) string {
	if t.assetURL == nil {
		return ""
	}
	return strings.TrimSpace(t.assetURL(key))
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	partials := components.DefaultPartials()
	for key, value := range cfg.Partials {
		if strings.TrimSpace(value) != "" {
			partials[key] = value
		}
	}
	return rendererTheme{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Partials: partials,
		CSSVars:  copyStringMap(cfg.CSSVars),
		assetURL: cfg.AssetURL,
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
