package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

const sentryFlushTimeout = 2 * time.Second

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`

	// Level is the stdout level.
	Level slog.Level `yaml:"-"`

	// MinLevel determines which levels reach Sentry: LevelWarn sends warnings and errors,
	// LevelError sends errors only.
	MinLevel slog.Level `yaml:"-"`
}

// NewWithSentry creates a logger that writes JSON to stdout and forwards
// warnings and errors to Sentry. Errors become Sentry issues.
// With an empty DSN, or when the SDK fails to initialize, only stdout is used.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(stdout, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{stdout, sentryHandler}, extractors...))
}

// Flush waits for buffered Sentry events, for use in a shutdown hook.
func Flush(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	timeout := sentryFlushTimeout
	if ok {
		timeout = max(time.Until(deadline), 0)
	}
	sentry.Flush(timeout)
	return nil
}
