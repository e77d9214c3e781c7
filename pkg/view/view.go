package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// DefaultExtension is appended to view names when loading files.
const DefaultExtension = ".pluto.html"

const maxLayoutDepth = 10

// Engine loads, compiles and caches views from a filesystem.
// It is safe for concurrent use.
type Engine struct {
	fs     fs.FS
	ext    string
	funcs  template.FuncMap
	reload bool

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtension changes the view file extension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		e.ext = ext
	}
}

// WithFuncs adds functions callable from compiled templates.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for k, v := range funcs {
			e.funcs[k] = v
		}
	}
}

// WithReload disables the cache so edits show up without a restart.
// Intended for development.
func WithReload(reload bool) Option {
	return func(e *Engine) {
		e.reload = reload
	}
}

// New returns an Engine reading views from fsys.
// View names are slash-separated paths without the extension.
func New(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{
		fs:    fsys,
		ext:   DefaultExtension,
		funcs: template.FuncMap{},
		cache: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render executes the named view with data and writes the result to w.
// Nothing is written when compilation or execution fails.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	tmpl, err := e.template(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Component adapts a view to templ.Component for Response.Render.
func (e *Engine) Component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return e.Render(w, name, data)
	})
}

// Compile resolves layouts and directives for the named view and caches
// the result. Call it at startup to fail fast on broken views.
func (e *Engine) Compile(name string) error {
	_, err := e.template(name)
	return err
}

func (e *Engine) template(name string) (*template.Template, error) {
	if !e.reload {
		e.mu.RLock()
		tmpl, ok := e.cache[name]
		e.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	tmpl, err := e.compile(name)
	if err != nil {
		return nil, err
	}
	if e.reload {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.cache[name]; ok {
		return cached, nil
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

func (e *Engine) compile(name string) (*template.Template, error) {
	src, err := e.resolve(name, map[string]string{}, 0)
	if err != nil {
		return nil, err
	}
	translated, err := Translate(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tmpl, err := template.New(name).Funcs(e.funcs).Parse(translated)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSyntax, name, err)
	}
	return tmpl, nil
}

// resolve inlines the layout chain of name. Sections defined closer to the
// rendered view win over those defined by its layouts.
func (e *Engine) resolve(name string, sections map[string]string, depth int) (string, error) {
	if depth > maxLayoutDepth {
		return "", fmt.Errorf("%w: %s", ErrExtendsDepth, name)
	}

	src, err := e.read(name)
	if err != nil {
		return "", err
	}

	body, own := extractSections(src)
	for k, v := range own {
		if _, ok := sections[k]; !ok {
			sections[k] = v
		}
	}

	if m := extendsRe.FindStringSubmatch(body); m != nil {
		return e.resolve(m[1], sections, depth+1)
	}
	return fillYields(body, sections), nil
}

func (e *Engine) read(name string) (string, error) {
	file := path.Clean(strings.TrimPrefix(name, "/")) + e.ext
	data, err := fs.ReadFile(e.fs, file)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	src := string(data)
	if strings.Contains(src, "@php") {
		return "", fmt.Errorf("%w: %s", ErrPHPDirective, name)
	}
	return src, nil
}
