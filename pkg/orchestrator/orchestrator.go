package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formgen-ssi/internal/loader"
	"github.com/goliatone/go-formgen-ssi/pkg/jsonschema"
	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/tui"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/uischema"
	"github.com/goliatone/go-formgen-ssi/pkg/widgets"
)

// ErrFormNotFound is returned when a request names a form the document does
// not hold.
var ErrFormNotFound = errors.New("orchestrator: form not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects the document loader shared by the default adapters.
func WithLoader(l schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithAdapterRegistry replaces the default JSON Schema + OpenAPI adapters.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = registry
	}
}

// WithDefaultAdapter names the adapter used when detection finds no match.
func WithDefaultAdapter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultAdapter = name
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithWidgetRegistry replaces the registry that resolves controller widgets.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithUIDecorators registers decorators that run after widget resolution.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS loads UI overlays from fsys and applies them to every form.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from schema document to rendered
// form and from submitted form back to register values.
type Orchestrator struct {
	loader          schema.Loader
	adapters        *AdapterRegistry
	defaultAdapter  string
	builder         model.Builder
	widgets         *widgets.Registry
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	uiSchemaFS      fs.FS
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	themeFallbacks  map[string]string
	logger          logrus.FieldLogger
	initialiseErr   error
}

// New constructs an Orchestrator. Missing collaborators fall back to the
// built-in implementations: file/fs loader, both schema adapters, the
// vanilla and tui renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultAdapter:  jsonschema.DefaultAdapterName,
		defaultRenderer: vanilla.Name,
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes where a form comes from and how to render it.
type Request struct {
	// Source locates the schema document. Optional when Document is set.
	Source schema.Source
	// Document bypasses the loader.
	Document *schema.Document
	// Format names the adapter; empty means detect.
	Format string
	// FormID selects one form of a multi-form document.
	FormID string
	// Endpoint overrides the submission target.
	Endpoint string
	// Renderer names the renderer; empty means the default.
	Renderer string
	// RenderOptions carries values, errors and hidden fields.
	RenderOptions render.RenderOptions
	// ThemeName and ThemeVariant override the configured theme defaults.
	ThemeName    string
	ThemeVariant string
}

// Form loads, normalises, builds and decorates the requested form model.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if o.initialiseErr != nil {
		return model.FormModel{}, o.initialiseErr
	}

	adapter, doc, err := o.resolveAdapter(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	ir, err := adapter.Normalize(ctx, doc, schema.NormalizeOptions{FormID: req.FormID, Endpoint: req.Endpoint})
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: normalise %s: %w", doc.Location(), err)
	}
	source, err := selectForm(ir, req.FormID)
	if err != nil {
		return model.FormModel{}, err
	}

	form, err := o.builder.Build(source)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.widgets.Decorate(&form); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: resolve widgets: %w", err)
	}
	if err := model.Chain(o.decorators).Decorate(&form); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"form":    form.ID,
		"adapter": adapter.Name(),
		"fields":  len(form.Fields),
	}).Debug("form model built")
	return form, nil
}

// Generate builds the form and renders it, HTML for the default renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, form, req)
}

// Render renders an already built form with the renderer and theme named by
// req.
func (o *Orchestrator) Render(ctx context.Context, form model.FormModel, req Request) ([]byte, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if len(options.Errors) > 0 {
		mapped := render.MapErrorPayload(form, options.Errors)
		options.Errors = mapped.Fields
		options.FormErrors = render.MergeFormErrors(options.FormErrors, mapped.Form...)
	}
	if options.Theme == nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.WithFields(logrus.Fields{
		"form":     form.ID,
		"renderer": renderer.Name(),
		"bytes":    len(output),
	}).Debug("form rendered")
	return output, nil
}

// Renderer returns the renderer a request would use.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.logger = discard
	}
	if o.loader == nil {
		o.loader = loader.New()
	}
	if o.adapters == nil {
		o.adapters = DefaultAdapters(o.loader)
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(tui.New())
	}
	if o.uiSchemaFS != nil {
		store, err := uischema.LoadFS(o.uiSchemaFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
			return
		}
		if !store.Empty() {
			o.decorators = append(o.decorators, uischema.NewDecorator(store))
		}
	}
}
