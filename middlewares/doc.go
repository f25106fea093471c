// Package middlewares provides HTTP middleware for mvc applications.
//
// # Request ID
//
// RequestID assigns an ID to each request. An ID sent in X-Request-ID or
// X-Correlation-ID is kept, otherwise a UUID is generated. The ID is echoed
// in the X-Request-ID response header.
//
// Pair it with RequestIDExtractor to get request_id on every log record:
//
//	app := mvc.New(
//	    mvc.WithLogger("blog", slog.LevelInfo, middlewares.RequestIDExtractor()),
//	    mvc.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns a panic into a *PanicError, which the error handler
// reports as a 500:
//
//	mvc.WithErrorHandler(func(c mvc.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value)
//	    }
//	    return c.String(http.StatusInternalServerError, "Internal Server Error")
//	})
//
// # Logging and Metrics
//
// Logging writes one record per request. Metrics records request count,
// latency and route misses on a metrics.Collector. Both label requests with
// the route that served them, so they see the route table even though they
// wrap it.
//
// # Order
//
//	mvc.WithMiddleware(
//	    middlewares.RequestID(),        // first, so later logs carry the ID
//	    middlewares.Logging(),
//	    middlewares.Metrics(collector),
//	    middlewares.Recover(),          // innermost, closest to the handler
//	)
package middlewares
