package mvc

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/avidian/mvc/internal"
	"github.com/avidian/mvc/pkg/health"
	"github.com/avidian/mvc/pkg/input"
	"github.com/avidian/mvc/pkg/logger"
	"github.com/avidian/mvc/pkg/metrics"
	"github.com/avidian/mvc/pkg/storage"
	"github.com/avidian/mvc/pkg/view"
)

// Type aliases - public API
type (
	// App owns global middleware, operational endpoints and the route table.
	App = internal.App

	// Router is the ordered, exact-match route table.
	Router = internal.Router

	// Route is a single entry of the route table.
	Route = internal.Route

	// RouterOption configures a Router.
	RouterOption = internal.RouterOption

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// HTTPError is an error that carries an HTTP status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ResponseWriter wraps http.ResponseWriter and tracks what was written.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// Scalar is the set of types typed query helpers convert to.
	Scalar = internal.Scalar
)

// NotFoundView is rendered with status 404 when no route matches and no
// not-found handler is set.
const NotFoundView = internal.NotFoundView

// Errors for checking return values.
var (
	ErrInvalidController     = internal.ErrInvalidController
	ErrActionNotFound        = internal.ErrActionNotFound
	ErrViewsNotConfigured    = internal.ErrViewsNotConfigured
	ErrStorageNotConfigured  = internal.ErrStorageNotConfigured
	ErrInvalidStaticFilesDir = internal.ErrInvalidStaticFilesDir
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	r := mvc.NewRouter()
//	r.Get("/users", mvc.Action(controllers.NewUserController, "Index"))
//
//	app := mvc.New(
//	    mvc.WithRouter(r),
//	    mvc.WithViews(views.FS),
//	)
//
//	err := app.Run(":8080", mvc.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRouter creates an empty route table.
func NewRouter(opts ...RouterOption) *Router {
	return internal.NewRouter(opts...)
}

// WithRouteNotFound sets the router's own not-found handler.
func WithRouteNotFound(h HandlerFunc) RouterOption {
	return internal.WithRouteNotFound(h)
}

// Action returns a handler that builds a fresh controller per request and
// calls the named method on it. The method must have the signature
// func(mvc.Context) error.
//
// Example:
//
//	r.Get("/users", mvc.Action(NewUserController, "Index"))
func Action[T any](newController func() T, method string) HandlerFunc {
	return internal.Action(newController, method)
}

// MatchedRoute returns the URI of the route that served the request.
func MatchedRoute(c Context) string {
	return internal.MatchedRoute(c)
}

// NewResponseWriter wraps w, reusing it when it is already a *ResponseWriter.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return internal.NewResponseWriter(w)
}

// Options

// WithRouter sets the route table requests are dispatched to.
func WithRouter(r *Router) Option {
	return internal.WithRouter(r)
}

// WithHandlers registers handlers that declare routes on the router.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithMiddleware adds global middleware, applied in the given order.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithLogger creates a JSON logger tagged with component.
//
// Example:
//
//	mvc.WithLogger("blog", slog.LevelInfo, middlewares.RequestIDExtractor())
func WithLogger(component string, level slog.Level, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, level, extractors...)
}

// WithCustomLogger sets a pre-configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithViews enables Context.View with templates from fsys.
func WithViews(fsys fs.FS, opts ...view.Option) Option {
	return internal.WithViews(fsys, opts...)
}

// WithStorage sets the file storage returned by Context.Storage.
func WithStorage(s storage.Storage) Option {
	return internal.WithStorage(s)
}

// WithInputSanitizer strips HTML from every request input value.
func WithInputSanitizer() Option {
	return internal.WithInputSanitizer()
}

// WithInputOptions sets the options used to parse Context.Input.
func WithInputOptions(opts ...input.Option) Option {
	return internal.WithInputOptions(opts...)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the handler used when no route matches.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithStaticFiles mounts a static file handler at the given pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHealthChecks enables the liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithMetrics exposes the collector at path ("/metrics" when empty).
func WithMetrics(c *metrics.Collector, path string) Option {
	return internal.WithMetrics(c, path)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger. Defaults to the application logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function that runs before the server listens.
// A failing hook aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function that runs after the server stops.
//
// Example:
//
//	app.Run(":8080", mvc.ShutdownHook(db.Shutdown(conn)))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an error that is written with the given status.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithDetail adds a detail message to an HTTPError.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithRequestID attaches a request ID to an HTTPError.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// WithError sets the underlying error of an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// IsHTTPError reports whether err carries an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Helpers

// ContextValue is a typed helper to retrieve values stored with Context.Set.
//
// Example:
//
//	user := mvc.ContextValue[*model.Model](c, userKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Query retrieves a typed query parameter, or the zero value.
//
// Example:
//
//	id := mvc.Query[int64](c, "id")
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter, or defaultValue when it is
// missing or cannot be parsed.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}
