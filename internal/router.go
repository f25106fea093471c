package internal

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// NotFoundView is the view rendered when no route matches and no
// not-found handler is configured.
const NotFoundView = "errors/404"

// Route is a single entry of the route table.
type Route struct {
	Handler HandlerFunc
	URI     string
	Method  string
}

// Router is an ordered route table.
// Requests are matched by a linear scan: the first route whose URI equals the
// request path exactly and whose method matches case-insensitively wins.
//
// Routes are registered during setup; Register and Group are not safe to call
// while the router is serving requests.
type Router struct {
	notFound HandlerFunc
	prefix   string
	routes   []Route
	mu       sync.RWMutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRouteNotFound sets the handler used when no route matches.
func WithRouteNotFound(h HandlerFunc) RouterOption {
	return func(r *Router) {
		r.notFound = h
	}
}

// NewRouter creates an empty router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends a route. The current group prefix is prepended to uri and
// method is stored upper-cased.
func (r *Router) Register(uri string, h HandlerFunc, method string) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, Route{
		URI:     r.prefix + uri,
		Method:  strings.ToUpper(method),
		Handler: h,
	})
	return r
}

func (r *Router) Get(uri string, h HandlerFunc) *Router {
	return r.Register(uri, h, http.MethodGet)
}

func (r *Router) Post(uri string, h HandlerFunc) *Router {
	return r.Register(uri, h, http.MethodPost)
}

func (r *Router) Put(uri string, h HandlerFunc) *Router {
	return r.Register(uri, h, http.MethodPut)
}

func (r *Router) Patch(uri string, h HandlerFunc) *Router {
	return r.Register(uri, h, http.MethodPatch)
}

func (r *Router) Delete(uri string, h HandlerFunc) *Router {
	return r.Register(uri, h, http.MethodDelete)
}

// Group registers the routes declared by fn under prefix.
// Nested groups concatenate their prefixes; the outer prefix is restored
// once fn returns.
//
// Example:
//
//	r.Group("/admin", func(r *mvc.Router) {
//	    r.Get("/users", listUsers) // GET /admin/users
//	})
func (r *Router) Group(prefix string, fn func(r *Router)) *Router {
	r.mu.Lock()
	outer := r.prefix
	r.prefix = outer + prefix
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.prefix = outer
		r.mu.Unlock()
	}()

	fn(r)
	return r
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes)
}

// Match returns the first route registered for method and path.
func (r *Router) Match(method, path string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, route := range r.routes {
		if route.URI == path && strings.EqualFold(route.Method, method) {
			return route, true
		}
	}
	return Route{}, false
}

// Dispatch runs the handler of the route matching the request.
// Without a match it runs the not-found handler, or renders NotFoundView
// with status 404 when none is configured.
func (r *Router) Dispatch(c Context) error {
	return r.dispatch(c, nil)
}

// dispatch is Dispatch with a fallback not-found handler that applies when
// the router has none of its own.
func (r *Router) dispatch(c Context, fallback HandlerFunc) error {
	req := c.Request()
	route, ok := r.Match(req.Method, req.URL.Path)
	if !ok {
		switch {
		case r.notFound != nil:
			return r.notFound(c)
		case fallback != nil:
			return fallback(c)
		}
		return c.View(http.StatusNotFound, NotFoundView, nil)
	}

	if m := matchFrom(req.Context()); m != nil {
		m.route = route.URI
	}
	return route.Handler(c)
}

// ServeHTTP dispatches a request outside of an App.
// Errors are reported as 500 unless they carry an HTTPError status.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c := newContext(w, req, nil)
	if err := r.Dispatch(c); err != nil {
		writeError(c, err)
	}
}

// routeMatch records the route that served a request so that middleware
// running outside the router can read it.
type routeMatch struct {
	route string
}

type routeMatchKey struct{}

func withRouteMatch(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), routeMatchKey{}, &routeMatch{}))
}

func matchFrom(ctx context.Context) *routeMatch {
	m, _ := ctx.Value(routeMatchKey{}).(*routeMatch)
	return m
}

// MatchedRoute returns the URI of the route that served the request, or ""
// when no route matched. Endpoints mounted on the App directly (health,
// metrics, static files) report their mux pattern. It is only meaningful
// once the handler has returned.
func MatchedRoute(c Context) string {
	ctx := c.Request().Context()
	if m := matchFrom(ctx); m != nil && m.route != "" {
		return m.route
	}
	if rctx := chi.RouteContext(ctx); rctx != nil {
		if p := rctx.RoutePattern(); p != "" && p != dispatchPattern {
			return p
		}
	}
	return ""
}
