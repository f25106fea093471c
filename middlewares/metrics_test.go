package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/internal"
	"github.com/avidian/mvc/middlewares"
	"github.com/avidian/mvc/pkg/metrics"
)

func counters(t *testing.T, c *metrics.Collector, name string) []*dto.Metric {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()
		}
	}
	return nil
}

func labels(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		out[l.GetName()] = l.GetValue()
	}
	return out
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	collector := metrics.New("test")
	r := internal.NewRouter()
	r.Get("/users", func(c internal.Context) error { return c.String(http.StatusOK, "ok") })
	r.Post("/users", func(c internal.Context) error { return internal.ErrBadRequest("bad") })

	app := internal.New(
		internal.WithRouter(r),
		internal.WithMiddleware(middlewares.Metrics(collector)),
		internal.WithMetrics(collector, ""),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "nope")
		}),
	)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/users", nil),
		httptest.NewRequest(http.MethodGet, "/users", nil),
		httptest.NewRequest(http.MethodPost, "/users", nil),
		httptest.NewRequest(http.MethodGet, "/users/1", nil),
	} {
		app.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := map[string]float64{}
	for _, m := range counters(t, collector, "test_http_requests_total") {
		l := labels(m)
		got[l["method"]+" "+l["route"]+" "+l["status"]] = m.GetCounter().GetValue()
	}
	require.Equal(t, map[string]float64{
		"GET /users 2xx":    2,
		"POST /users 4xx":   1,
		"GET unmatched 4xx": 1,
	}, got)

	misses := counters(t, collector, "test_route_misses_total")
	require.Len(t, misses, 1)
	require.Equal(t, float64(1), misses[0].GetCounter().GetValue())

	inFlight := counters(t, collector, "test_http_requests_in_flight")
	require.Len(t, inFlight, 1)
	require.Zero(t, inFlight[0].GetGauge().GetValue())
}

func TestMetricsEndpointRoute(t *testing.T) {
	t.Parallel()

	collector := metrics.New("test")
	app := internal.New(
		internal.WithMiddleware(middlewares.Metrics(collector)),
		internal.WithMetrics(collector, "/metrics"),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var routes []string
	for _, m := range counters(t, collector, "test_http_requests_total") {
		routes = append(routes, labels(m)["route"])
	}
	require.Equal(t, []string{"/metrics"}, routes)
	require.Empty(t, counters(t, collector, "test_route_misses_total"))
}

func TestMetricsMethodLabel(t *testing.T) {
	t.Parallel()

	collector := metrics.New("test")
	r := internal.NewRouter()
	r.Get("/users", func(c internal.Context) error { return c.String(http.StatusOK, "ok") })

	app := internal.New(
		internal.WithRouter(r),
		internal.WithMiddleware(middlewares.Metrics(collector)),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "nope")
		}),
	)

	for _, method := range []string{"GET", "get", "Get", "FOO", "BAR", "brew"} {
		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, "/users", nil))
	}

	got := map[string]float64{}
	for _, m := range counters(t, collector, "test_http_requests_total") {
		l := labels(m)
		got[l["method"]+" "+l["route"]+" "+l["status"]] = m.GetCounter().GetValue()
	}
	require.Equal(t, map[string]float64{
		"GET /users 2xx":      3,
		"OTHER unmatched 4xx": 3,
	}, got)

	misses := counters(t, collector, "test_route_misses_total")
	require.Len(t, misses, 1)
	require.Equal(t, "OTHER", labels(misses[0])["method"])
	require.Equal(t, float64(3), misses[0].GetCounter().GetValue())
}
