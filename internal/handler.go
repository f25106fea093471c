package internal

import (
	"fmt"
	"reflect"
)

// Handler declares routes on a router.
//
// Example:
//
//	type UserController struct{ users *model.Repository }
//
//	func (h *UserController) Routes(r *mvc.Router) {
//	    r.Get("/users", h.index)
//	    r.Post("/users", h.store)
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the application's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Auth(next mvc.HandlerFunc) mvc.HandlerFunc {
//	    return func(c mvc.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Redirect(302, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

var (
	contextType = reflect.TypeFor[Context]()
	errorType   = reflect.TypeFor[error]()
)

// Action builds a handler that creates a fresh controller for every request
// and calls its exported method by name. The method must have the signature
// func(Context) error.
//
// Resolution happens at dispatch: a nil factory or a nil controller yields
// ErrInvalidController, a missing or ill-typed method yields ErrActionNotFound.
//
// Example:
//
//	r.Get("/users", mvc.Action(controllers.NewUserController, "Index"))
func Action[T any](newController func() T, method string) HandlerFunc {
	return func(c Context) error {
		if newController == nil {
			return ErrInvalidController
		}
		v := reflect.ValueOf(newController())
		if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
			return ErrInvalidController
		}

		fn := v.MethodByName(method)
		if !fn.IsValid() {
			return fmt.Errorf("%w: %s on %s", ErrActionNotFound, method, v.Type())
		}
		ft := fn.Type()
		if ft.NumIn() != 1 || ft.In(0) != contextType || ft.NumOut() != 1 || ft.Out(0) != errorType {
			return fmt.Errorf("%w: %s on %s has signature %s", ErrActionNotFound, method, v.Type(), ft)
		}

		out := fn.Call([]reflect.Value{reflect.ValueOf(&c).Elem()})
		if err, _ := out[0].Interface().(error); err != nil {
			return err
		}
		return nil
	}
}
