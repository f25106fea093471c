// Package metrics exposes Prometheus metrics for HTTP requests, route
// misses and SQL statements.
//
//	m := metrics.New("blog")
//	conn := model.NewConn(handle.DB, dialect, model.WithObserver(m.ObserveQuery))
//	app := mvc.New(mvc.WithMetrics(m, "/metrics"))
package metrics
