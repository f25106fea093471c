package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/avidian/mvc/pkg/input"
	"github.com/avidian/mvc/pkg/logger"
	"github.com/avidian/mvc/pkg/storage"
	"github.com/avidian/mvc/pkg/view"
)

// Context provides request and response access to handlers.
// It embeds context.Context, so it can be passed to any function that takes one,
// including every model and storage operation.
type Context interface {
	context.Context

	// Request returns the underlying HTTP request.
	Request() *http.Request

	// Response returns the underlying response writer.
	Response() http.ResponseWriter

	// Input returns the merged query, form and JSON body values.
	// The request body is parsed on first call; later calls return the same bag.
	Input() (*input.Input, error)

	// Query returns a query string parameter.
	Query(name string) string

	// Form returns a form value from the request body or query string.
	Form(name string) string

	// Header returns a request header value.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as JSON with the given status code.
	// Models are encoded through their MarshalJSON, so hidden columns never leave.
	JSON(code int, v any) error

	// String writes plain text with the given status code.
	String(code int, s string) error

	// NoContent writes only the status code.
	NoContent(code int) error

	// Redirect redirects to url with the given status code.
	Redirect(code int, url string) error

	// Render writes a templ component as HTML with the given status code.
	Render(code int, component templ.Component) error

	// View renders the named view with data.
	// A missing view returns view.ErrNotFound before anything is written.
	View(code int, name string, data any) error

	// Asset returns the absolute URL of a public path on the current host.
	Asset(path string) string

	// Storage returns the configured file storage.
	Storage() (storage.Storage, error)

	// Error creates an HTTPError with the given code and message.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response has been written.
	Written() bool

	// Logger returns the application logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get retrieves a value from the request context.
	Get(key any) any
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	views          *view.Engine
	storage        storage.Storage
	input          *input.Input
	inputErr       error
	inputOpts      []input.Option
	inputParsed    bool
}

// newContext wraps a request. app may be nil for a router served on its own.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	c := &requestContext{
		request:        r,
		responseWriter: NewResponseWriter(w),
		logger:         logger.NewNope(),
	}
	if app != nil {
		c.logger = app.logger
		c.views = app.views
		c.storage = app.storage
		c.inputOpts = app.inputOpts
	}
	return c
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Input() (*input.Input, error) {
	if !c.inputParsed {
		c.input, c.inputErr = input.FromRequest(c.request, c.inputOpts...)
		c.inputParsed = true
	}
	return c.input, c.inputErr
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := c.responseWriter.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component templ.Component) error {
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return component.Render(c.request.Context(), c.responseWriter)
}

func (c *requestContext) View(code int, name string, data any) error {
	if c.views == nil {
		return ErrViewsNotConfigured
	}
	component, err := c.views.Render(name, data)
	if err != nil {
		return err
	}

	// Buffer so a failing template still leaves the response unwritten.
	var buf bytes.Buffer
	if err := component.Render(c.request.Context(), &buf); err != nil {
		return err
	}
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err = buf.WriteTo(c.responseWriter)
	return err
}

func (c *requestContext) Asset(path string) string {
	scheme := "http"
	if c.request.TLS != nil {
		scheme = "https"
	}
	if proto := c.request.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.request.Host + "/" + strings.TrimPrefix(path, "/")
}

func (c *requestContext) Storage() (storage.Storage, error) {
	if c.storage == nil {
		return nil, ErrStorageNotConfigured
	}
	return c.storage, nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
