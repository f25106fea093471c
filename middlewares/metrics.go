package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/avidian/mvc/internal"
	"github.com/avidian/mvc/pkg/metrics"
)

// unmatchedRoute labels requests no route served, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// otherMethod labels request methods outside the standard set.
const otherMethod = "OTHER"

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// methodLabel folds the request method onto the standard set. Routes match
// methods case-insensitively, so "get" and "GET" share a series.
func methodLabel(method string) string {
	m := strings.ToUpper(method)
	if _, ok := knownMethods[m]; ok {
		return m
	}
	return otherMethod
}

// Metrics returns middleware that records request count, latency and
// in-flight requests on collector. Requests that match no route are labelled
// "unmatched" and also counted as route misses.
func Metrics(collector *metrics.Collector) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			collector.RequestsInFlight.Inc()
			defer collector.RequestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			method := methodLabel(c.Request().Method)
			route := internal.MatchedRoute(c)
			if route == "" {
				route = unmatchedRoute
				collector.RouteMiss(method)
			}
			collector.ObserveRequest(method, route, responseStatus(c, err), time.Since(start))
			return err
		}
	}
}
