// Package gotemplate renders the HTML templates through a pongo2 template set
// with the filters the controller editors rely on.
package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formgen-ssi/pkg/render/template"
)

// DefaultExtension is appended to template names that carry none.
const DefaultExtension = ".tmpl"

var errNilEngine = errors.New("gotemplate: engine is nil")

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files   fs.FS
	dir     string
	ext     string
	globals map[string]any
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithDir loads templates from a directory on disk. It is searched before the
// WithFS tree, so single embedded templates can be replaced per site.
func WithDir(dir string) Option {
	return func(cfg *config) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithExtension overrides DefaultExtension. The leading dot is optional.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.ext = "." + strings.TrimPrefix(ext, ".")
		}
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(values map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(values))
		}
		for key, value := range values {
			cfg.globals[key] = value
		}
	}
}

// WithGoTemplateOptions is accepted for API compatibility with go-template
// engine option lists only. The options are ignored; this engine renders
// through pongo2 and is configured with the other Option values.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Engine implements template.TemplateRenderer. Template data is normalised to
// plain maps first, so structs appear under their json tag names.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu       sync.RWMutex
	compiled map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

func New(options ...Option) (*Engine, error) {
	cfg := config{ext: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loaders, err := cfg.loaders()
	if err != nil {
		return nil, err
	}
	registerBuiltinFilters()

	engine := &Engine{
		set:      pongo2.NewSet("ssiform", loaders...),
		ext:      cfg.ext,
		compiled: make(map[string]*pongo2.Template),
	}
	if len(cfg.globals) > 0 {
		if err := engine.GlobalContext(cfg.globals); err != nil {
			return nil, fmt.Errorf("gotemplate: globals: %w", err)
		}
	}
	return engine, nil
}

func (cfg config) loaders() ([]pongo2.TemplateLoader, error) {
	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %q: %w", cfg.dir, err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: no template source, use WithFS or WithDir")
	}
	return loaders, nil
}

// Render treats name as inline content when it holds pongo2 tags and as a
// template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(tmpl, name, data, out)
}

func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.run(tmpl, "inline template", data, out)
}

func (e *Engine) run(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	view, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(view, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return rendered, err
		}
	}
	return rendered, nil
}

// lookup compiles a template once and serves it from the cache afterwards.
func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl := e.compiled[name]
	e.mu.RUnlock()
	if tmpl != nil {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl = e.compiled[name]; tmpl != nil {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.compiled[name] = tmpl
	return tmpl, nil
}

// GlobalContext merges data into the template set globals.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(globals)
	return nil
}
