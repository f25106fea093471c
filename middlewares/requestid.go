package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avidian/mvc/internal"
	"github.com/avidian/mvc/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// DefaultRequestIDHeaders lists the inbound headers an ID is taken from,
// first non-empty one wins.
var DefaultRequestIDHeaders = []string{requestIDHeader, "X-Correlation-ID"}

type requestIDSettings struct {
	headers  []string
	generate func() string
}

// RequestIDOption tunes the RequestID middleware.
type RequestIDOption func(*requestIDSettings)

// WithRequestIDHeaders replaces the inbound header list.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(s *requestIDSettings) {
		s.headers = headers
	}
}

// WithRequestIDGenerator replaces uuid.NewString. A nil gen is ignored.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(s *requestIDSettings) {
		if gen != nil {
			s.generate = gen
		}
	}
}

// RequestID tags every request with an ID, reusing the caller's when one of
// the inbound headers carries it. The ID is echoed as X-Request-ID.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	s := requestIDSettings{
		headers:  DefaultRequestIDHeaders,
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := s.inbound(c)
			if id == "" {
				id = s.generate()
			}
			c.Set(requestIDKey{}, id)
			c.SetHeader(requestIDHeader, id)
			return next(c)
		}
	}
}

func (s requestIDSettings) inbound(c internal.Context) string {
	for _, h := range s.headers {
		if v := c.Header(h); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID returns the ID RequestID assigned, or "".
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor puts request_id on log records written with the
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, _ := ctx.Value(requestIDKey{}).(string)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
