package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avidian/mvc/internal"
)

// Logging returns middleware that writes one record per request:
// method, path, matched route, status and duration.
// Server errors log at error level, client errors at warn, the rest at info.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("route", internal.MatchedRoute(c)),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}

// responseStatus returns the status that was, or will be, sent for the request.
// An error that has not been written yet is reported with the status it maps to.
func responseStatus(c internal.Context, err error) int {
	if err != nil && !c.Written() {
		if httpErr := internal.AsHTTPError(err); httpErr != nil {
			return httpErr.Code
		}
		return http.StatusInternalServerError
	}
	if rw, ok := c.Response().(*internal.ResponseWriter); ok {
		return rw.Status()
	}
	return http.StatusOK
}
