// Package view renders named html/template files as templ components.
//
// Names use dots or slashes as separators, so "errors.404" and "errors/404"
// both load errors/404.html:
//
//	views := view.New(os.DirFS("views"))
//	c, err := views.Render("users.index", data)
//	if err != nil {
//		return err
//	}
//	return c.Render(ctx, w)
package view
