package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/sync/singleflight"
)

// DefaultExtension is appended to view names that carry none.
const DefaultExtension = ".html"

// Engine resolves view names to html/template files inside an fs.FS.
// Parsed templates are cached; safe for concurrent use.
type Engine struct {
	fsys    fs.FS
	ext     string
	funcs   template.FuncMap
	nocache bool

	cache sync.Map // name -> *template.Template
	group singleflight.Group
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtension changes the file extension appended to view names.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithFuncs registers template functions available to every view.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for k, v := range funcs {
			e.funcs[k] = v
		}
	}
}

// WithoutCache re-reads views on every render. Useful while editing templates.
func WithoutCache() Option {
	return func(e *Engine) {
		e.nocache = true
	}
}

// New creates an engine over fsys.
func New(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{
		fsys:  fsys,
		ext:   DefaultExtension,
		funcs: template.FuncMap{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path maps a view name to its file: "errors.404" and "errors/404"
// both become "errors/404.html".
func (e *Engine) Path(name string) string {
	name = strings.TrimSuffix(strings.Trim(name, "/"), e.ext)
	name = strings.ReplaceAll(name, ".", "/")
	return path.Clean(name) + e.ext
}

// Exists reports whether the view file is present.
func (e *Engine) Exists(name string) bool {
	_, err := fs.Stat(e.fsys, e.Path(name))
	return err == nil
}

// Render resolves name and returns a component that executes the template with data.
// A missing view file returns ErrNotFound.
func (e *Engine) Render(name string, data any) (templ.Component, error) {
	tmpl, err := e.lookup(e.Path(name))
	if err != nil {
		return nil, err
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := tmpl.Execute(w, data); err != nil {
			return errors.Join(ErrExecute, err)
		}
		return nil
	}), nil
}

func (e *Engine) lookup(file string) (*template.Template, error) {
	if !e.nocache {
		if cached, ok := e.cache.Load(file); ok {
			return cached.(*template.Template), nil
		}
	}

	v, err, _ := e.group.Do(file, func() (any, error) {
		tmpl, err := e.parse(file)
		if err != nil {
			return nil, err
		}
		if !e.nocache {
			e.cache.Store(file, tmpl)
		}
		return tmpl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

func (e *Engine) parse(file string) (*template.Template, error) {
	src, err := fs.ReadFile(e.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, file)
		}
		return nil, errors.Join(ErrParse, err)
	}
	tmpl, err := template.New(file).Funcs(e.funcs).Parse(string(src))
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return tmpl, nil
}
