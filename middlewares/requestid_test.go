package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/internal"
	"github.com/avidian/mvc/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid when not present", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		var seen string
		handler := middlewares.RequestID()(func(c internal.Context) error {
			seen = middlewares.GetRequestID(c)
			return nil
		})

		require.NoError(t, handler(ctx))
		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get("X-Request-ID"))
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
	})

	t.Run("keeps the first configured header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		req.Header.Set("X-Trace-ID", "trace-1")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace-ID", "X-Correlation-ID"),
		)(func(internal.Context) error { return nil })

		require.NoError(t, handler(ctx))
		require.Equal(t, "trace-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		handler := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		)(func(internal.Context) error { return nil })

		require.NoError(t, handler(ctx))
		require.Equal(t, "fixed", rec.Header().Get("X-Request-ID"))
		require.Equal(t, "fixed", middlewares.GetRequestID(ctx))
	})

	t.Run("missing id reads as empty", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, middlewares.GetRequestID(ctx))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	extractor := middlewares.RequestIDExtractor()
	_, ok := extractor(ctx)
	require.False(t, ok)

	handler := middlewares.RequestID()(func(internal.Context) error { return nil })
	require.NoError(t, handler(ctx))

	attr, ok := extractor(ctx)
	require.True(t, ok)
	require.Equal(t, "request_id", attr.Key)
	require.Equal(t, rec.Header().Get("X-Request-ID"), attr.Value.String())
}
