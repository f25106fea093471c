package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avidian/mvc/pkg/input"
	"github.com/avidian/mvc/pkg/logger"
	"github.com/avidian/mvc/pkg/metrics"
	"github.com/avidian/mvc/pkg/storage"
	"github.com/avidian/mvc/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithRouter sets the route table the application dispatches to.
// Without it the application starts with an empty router.
//
// Example:
//
//	r := mvc.NewRouter()
//	r.Get("/", home)
//	app := mvc.New(mvc.WithRouter(r))
func WithRouter(r *Router) Option {
	return func(a *App) {
		if r != nil {
			a.router = r
		}
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called on the application router during New.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithLogger creates a JSON logger tagged with a component name.
// Extractors pull values such as the request id from the request context.
//
// Example:
//
//	mvc.New(
//	    mvc.WithLogger("blog", slog.LevelInfo, middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, level slog.Level, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(level, extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithViews enables Context.View and the default not-found page.
// Views are looked up in fsys by name, "errors.404" or "errors/404".
//
// Example:
//
//	//go:embed views
//	var views embed.FS
//
//	sub, _ := fs.Sub(views, "views")
//	mvc.New(mvc.WithViews(sub))
func WithViews(fsys fs.FS, opts ...view.Option) Option {
	return func(a *App) {
		a.views = view.New(fsys, opts...)
	}
}

// WithStorage configures file storage for Context.Storage.
func WithStorage(s storage.Storage) Option {
	return func(a *App) {
		a.storage = s
	}
}

// WithInputSanitizer strips HTML from every string in Context.Input.
func WithInputSanitizer() Option {
	return WithInputOptions(input.WithSanitizer())
}

// WithInputOptions sets the options used to parse Context.Input.
func WithInputOptions(opts ...input.Option) Option {
	return func(a *App) {
		a.inputOpts = append(a.inputOpts, opts...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error and nothing was written yet.
//
// Example:
//
//	mvc.WithErrorHandler(func(c mvc.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the handler used when no route matches.
// A router's own not-found handler takes precedence.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithHealthChecks enables health check endpoints.
// Liveness (/health/live) always returns OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	mvc.WithHealthChecks(
//	    mvc.WithReadinessCheck("db", db.Healthcheck(conn.DB)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMetrics exposes the collector's registry at path ("/metrics" when empty).
// Request and query observation are wired separately through
// middlewares.Metrics and model.WithObserver.
func WithMetrics(c *metrics.Collector, path string) Option {
	return func(a *App) {
		if c == nil {
			return
		}
		if path == "" {
			path = defaultMetricsPath
		}
		a.metricsCollector = c
		a.metricsPath = path
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	mvc.New(
//	    mvc.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(fmt.Errorf("%w: %w", ErrInvalidStaticFilesDir, err))
		}

		prefix := strings.TrimSuffix(pattern, "/")
		fileServer := http.StripPrefix(prefix, http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler: handler, pattern: prefix + "/*"})
	}
}
