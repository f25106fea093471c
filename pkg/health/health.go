package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/avidian/mvc/pkg/logger"
)

const (
	DefaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. db.Healthcheck returns one.
type CheckFunc func(ctx context.Context) error

// Checks maps a name to its probe.
type Checks map[string]CheckFunc

// Report is the aggregated result of a run.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Result is the outcome of one check.
type Result struct {
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Checker runs a fixed set of checks concurrently under a shared timeout.
type Checker struct {
	checks  Checks
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout bounds a whole run. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Checker. Nil checks are ignored.
func New(checks Checks, opts ...Option) *Checker {
	c := &Checker{
		checks:  make(Checks, len(checks)),
		timeout: DefaultTimeout,
		logger:  logger.NewNope(),
	}
	for name, fn := range checks {
		if fn != nil {
			c.checks[name] = fn
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes every check and waits for all of them.
// A check still running when the timeout fires fails with ErrCheckTimeout.
func (c *Checker) Run(ctx context.Context) Report {
	if len(c.checks) == 0 {
		return Report{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(c.checks))
		status  = StatusHealthy
	)

	for name, check := range c.checks {
		wg.Go(func() {
			start := time.Now()
			err := check(ctx)
			if err == nil && ctx.Err() != nil {
				err = ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				err = errors.Join(ErrCheckTimeout, err)
			}

			res := Result{Status: StatusHealthy, Duration: time.Since(start)}
			if err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				c.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.Any("error", err),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = res
			if err != nil {
				status = StatusUnhealthy
			}
		})
	}
	wg.Wait()

	return Report{Status: status, Checks: results}
}
