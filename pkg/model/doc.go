// Package model is a small active-record layer over database/sql.
//
// A [Definition] names a table and its fillable and hidden columns. A [Conn]
// wraps the database handle and hands out a [Repository] per definition;
// rows come back as [*Model] values holding an attribute map.
//
//	var Users = model.Define("User",
//		model.Fillable("username", "password"),
//		model.Hidden("password"),
//	)
//
//	conn := model.NewConn(handle.DB, model.SQLite)
//	users := conn.Table(Users)
//
//	u, err := users.Create(ctx, model.Attributes{"username": "ada", "password": "x"})
//	err = u.Update(ctx, model.Attributes{"username": "lovelace"})
//	err = users.DeleteMany(ctx, u)
//
// Relations are built from an instance:
//
//	author, err := post.BelongsTo(Users).Get(ctx)       // ErrParentNotFound when missing
//	profile, err := user.HasOne(Profiles).Get(ctx)      // nil, nil when missing
//	posts, err := user.HasMany(Posts).Get(ctx)
//
// Table and column names are validated and quoted; values are always bound
// as placeholders. Every statement is prepared before it runs.
package model
