// Package logger builds the slog loggers used across the framework.
//
// Loggers write JSON to stdout. A [ContextHandler] adds attributes pulled
// from the request context (the request id, for instance) to every record:
//
//	log := logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "user created", slog.Int64("id", id))
//
// [NewWithSentry] additionally forwards warnings and errors to Sentry and
// falls back to stdout only when no DSN is configured. [NewNope] discards
// everything and is the default for components built without a logger.
package logger
