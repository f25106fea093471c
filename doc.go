// Package mvc is a small model-view-controller framework for Go web
// applications.
//
// Requests are served from an explicit route table: a linear scan that
// matches the request path exactly and the method case-insensitively.
// Models live in [github.com/avidian/mvc/pkg/model] and views are html/template
// files rendered by [github.com/avidian/mvc/pkg/view].
//
// # Quick Start
//
//	r := mvc.NewRouter()
//	r.Get("/", func(c mvc.Context) error {
//	    return c.View(http.StatusOK, "home", nil)
//	})
//
//	app := mvc.New(
//	    mvc.WithRouter(r),
//	    mvc.WithViews(os.DirFS("views")),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controllers
//
// A route can point at a controller method. A fresh controller is built for
// every request:
//
//	type UserController struct{ users *model.Repository }
//
//	func (u *UserController) Index(c mvc.Context) error {
//	    all, err := u.users.All(c)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, all)
//	}
//
//	r.Get("/users", mvc.Action(func() *UserController {
//	    return &UserController{users: users}
//	}, "Index"))
//
// Controllers that prefer plain method values can implement [Handler] and
// register their routes through WithHandlers.
//
// # Groups
//
// Group prefixes every route registered inside it:
//
//	r.Group("/admin", func(r *mvc.Router) {
//	    r.Get("/users", listUsers) // GET /admin/users
//	})
//
// # Not Found
//
// A request no route matches runs the router's not-found handler, then the
// application's, and otherwise renders the "errors/404" view with status 404.
//
// # Shutdown
//
// Run handles SIGINT and SIGTERM. Cleanup goes in shutdown hooks:
//
//	app.Run(":8080", mvc.ShutdownHook(db.Shutdown(conn)))
package mvc
