package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/avidian/mvc/internal"
	"github.com/avidian/mvc/pkg/input"
	"github.com/avidian/mvc/pkg/logger"
	"github.com/avidian/mvc/pkg/storage"
)

type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
		logger:   logger.NewNope(),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Deadline() (time.Time, bool)   { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}         { return c.request.Context().Done() }
func (c *testContext) Err() error                    { return c.request.Context().Err() }
func (c *testContext) Value(key any) any             { return c.request.Context().Value(key) }

func (c *testContext) Input() (*input.Input, error) { return input.FromRequest(c.request) }
func (c *testContext) Query(name string) string     { return c.request.URL.Query().Get(name) }
func (c *testContext) Form(name string) string      { return c.request.FormValue(name) }
func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error {
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }

func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Render(code int, component templ.Component) error {
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *testContext) View(int, string, any) error { return internal.ErrViewsNotConfigured }
func (c *testContext) Asset(path string) string    { return "http://" + c.request.Host + "/" + path }
func (c *testContext) Storage() (storage.Storage, error) {
	return nil, internal.ErrStorageNotConfigured
}
func (c *testContext) Written() bool                     { return c.response.Written() }
func (c *testContext) Logger() *slog.Logger              { return c.logger }
func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.Debug(msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.Info(msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.Warn(msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.Error(msg, attrs...) }
func (c *testContext) Get(key any) any                   { return c.request.Context().Value(key) }

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

var _ internal.Context = (*testContext)(nil)
