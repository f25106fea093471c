package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avidian/mvc/pkg/health"
	"github.com/avidian/mvc/pkg/input"
	"github.com/avidian/mvc/pkg/logger"
	"github.com/avidian/mvc/pkg/metrics"
	"github.com/avidian/mvc/pkg/storage"
	"github.com/avidian/mvc/pkg/view"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

const (
	defaultMetricsPath = "/metrics"

	// dispatchPattern is the mux pattern that hands requests to the route table.
	dispatchPattern = "/*"
)

// App owns the HTTP surface of an application: global middleware, operational
// endpoints and the route table every other request is dispatched to.
// App is immutable after creation; all configuration is done via New().
type App struct {
	mux              chi.Router
	router           *Router
	errorHandler     ErrorHandler
	notFoundHandler  HandlerFunc
	healthConfig     *healthConfig
	metricsCollector *metrics.Collector
	logger           *slog.Logger
	views            *view.Engine
	storage          storage.Storage
	metricsPath      string
	inputOpts        []input.Option
	middlewares      []Middleware
	handlers         []Handler
	staticRoutes     []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := mvc.New(
//	    mvc.WithRouter(router),
//	    mvc.WithViews(views),
//	    mvc.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	)
func New(opts ...Option) *App {
	a := &App{
		mux:    chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.router == nil {
		a.router = NewRouter()
	}

	a.setupRoutes()
	return a
}

// Router returns the route table requests are dispatched to.
func (a *App) Router() *Router {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM,
// then shuts down gracefully.
//
// Example:
//
//	err := app.Run(":8080",
//	    mvc.Logger(log),
//	    mvc.ShutdownHook(db.Shutdown(conn)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes wires middleware, operational endpoints and the route table into the mux.
func (a *App) setupRoutes() {
	a.mux.Use(trackRouteMatch)

	for _, mw := range a.middlewares {
		a.mux.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.mux.Handle(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.mux.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.mux.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)).ServeHTTP)
	}

	if a.metricsCollector != nil {
		a.mux.Get(a.metricsPath, a.metricsCollector.Handler().ServeHTTP)
	}

	for _, h := range a.handlers {
		h.Routes(a.router)
	}

	// Everything else goes through the route table. chi answers methods
	// outside its own method table (and lowercase spellings) with 405 before
	// any pattern lookup, so that handler dispatches too.
	a.mux.Handle(dispatchPattern, http.HandlerFunc(a.dispatch))
	a.mux.MethodNotAllowed(a.dispatch)
}

// dispatch serves a request from the route table.
func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a)
	if err := a.router.dispatch(c, a.notFoundHandler); err != nil {
		a.handleError(c, err)
	}
}

// handleError reports a handler error through the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.ErrorContext(c, "handler failed after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil || c.Written() {
			return
		}
	}
	if AsHTTPError(err) == nil {
		a.logger.ErrorContext(c, "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
	}
	writeError(c, err)
}

// writeError writes err as plain text with the status it carries, or 500.
func writeError(c Context, err error) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)
	if httpErr := AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
		message = httpErr.Error()
	}
	http.Error(c.Response(), message, code)
}

// adaptMiddleware converts a Middleware to chi middleware.
// The Context given to the middleware is passed on, so values it Sets are
// visible to later middleware and the route handler.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			c := newContext(w, r, a)
			if err := mw(nextFunc)(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

// trackRouteMatch lets the router report the matched route back to middleware.
func trackRouteMatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, withRouteMatch(r))
	})
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during the readiness probe.
//
// Example:
//
//	mvc.WithReadinessCheck("db", db.Healthcheck(conn.DB))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
