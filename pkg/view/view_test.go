package view_test

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/pkg/view"
)

func views() fstest.MapFS {
	return fstest.MapFS{
		"errors/404.html": {Data: []byte(`<h1>{{.}} not found</h1>`)},
		"users/index.tpl": {Data: []byte(`{{range .}}<li>{{upper .}}</li>{{end}}`)},
		"broken.html":     {Data: []byte(`{{ .Missing`)},
		"fails.html":      {Data: []byte(`{{ .Nope.Deeper }}`)},
	}
}

func render(t *testing.T, e *view.Engine, name string, data any) string {
	t.Helper()
	c, err := e.Render(name, data)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPath(t *testing.T) {
	t.Parallel()

	e := view.New(views())
	require.Equal(t, "errors/404.html", e.Path("errors.404"))
	require.Equal(t, "errors/404.html", e.Path("errors/404"))
	require.Equal(t, "errors/404.html", e.Path("/errors/404.html"))
	require.Equal(t, "home.html", e.Path("home"))
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("dotted and slashed names", func(t *testing.T) {
		t.Parallel()
		e := view.New(views())
		require.Equal(t, "<h1>/nope not found</h1>", render(t, e, "errors.404", "/nope"))
		require.Equal(t, "<h1>&lt;b&gt; not found</h1>", render(t, e, "errors/404", "<b>"))
	})

	t.Run("custom extension and funcs", func(t *testing.T) {
		t.Parallel()
		e := view.New(views(),
			view.WithExtension("tpl"),
			view.WithFuncs(template.FuncMap{"upper": strings.ToUpper}),
		)
		require.True(t, e.Exists("users.index"))
		require.Equal(t, "<li>A</li><li>B</li>", render(t, e, "users.index", []string{"a", "b"}))
	})

	t.Run("missing view", func(t *testing.T) {
		t.Parallel()
		e := view.New(views())
		require.False(t, e.Exists("errors.500"))
		_, err := e.Render("errors.500", nil)
		require.ErrorIs(t, err, view.ErrNotFound)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		_, err := view.New(views()).Render("broken", nil)
		require.ErrorIs(t, err, view.ErrParse)
	})

	t.Run("execute error", func(t *testing.T) {
		t.Parallel()
		c, err := view.New(views()).Render("fails", map[string]any{"Nope": 1})
		require.NoError(t, err)
		err = c.Render(context.Background(), &bytes.Buffer{})
		require.ErrorIs(t, err, view.ErrExecute)
	})
}

func TestCache(t *testing.T) {
	t.Parallel()

	fsys := views()
	cached := view.New(fsys)
	fresh := view.New(fsys, view.WithoutCache())

	require.Equal(t, "<h1>x not found</h1>", render(t, cached, "errors.404", "x"))
	require.Equal(t, "<h1>x not found</h1>", render(t, fresh, "errors.404", "x"))

	fsys["errors/404.html"] = &fstest.MapFile{Data: []byte(`gone: {{.}}`)}
	require.Equal(t, "<h1>x not found</h1>", render(t, cached, "errors.404", "x"))
	require.Equal(t, "gone: x", render(t, fresh, "errors.404", "x"))
}

func TestConcurrentRender(t *testing.T) {
	t.Parallel()

	e := view.New(views())
	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			c, err := e.Render("errors.404", "p")
			if err != nil {
				t.Error(err)
				return
			}
			var buf bytes.Buffer
			if err := c.Render(context.Background(), &buf); err != nil {
				t.Error(err)
			}
		})
	}
	wg.Wait()
}
