// Package internal provides the core types and implementation of the mvc framework.
//
// This package is internal and should not be used directly. Import
// "github.com/avidian/mvc" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: owns the chi mux, global middleware, health and metrics endpoints,
//     static files and graceful shutdown
//   - Router: ordered route table matched by exact URI and method
//   - Context: request and response access, input, views, storage and logging
//   - HandlerFunc: route handler returning an error
//   - Action: controller handler resolved by method name at dispatch
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - HTTPError: error carrying the status code it is reported with
//
// # Routing
//
// Routes are kept in registration order and scanned linearly. The first route
// whose URI equals the request path and whose method matches wins. There are
// no path parameters; pass identifiers in the query string or the body.
//
//	r := internal.NewRouter()
//	r.Get("/users", listUsers)
//	r.Group("/admin", func(r *internal.Router) {
//	    r.Post("/users/delete", internal.Action(NewUserController, "Delete"))
//	})
//
// When nothing matches, the router renders the "errors/404" view with
// status 404. A missing view surfaces as a 500.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to model and
// storage calls:
//
//	func show(c internal.Context) error {
//	    user, err := users.Find(c, internal.Query[int64](c, "id"))
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(200, user)
//	}
package internal
