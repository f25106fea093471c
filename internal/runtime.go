package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avidian/mvc/pkg/logger"
)

const defaultAddress = ":8080"

// runtimeConfig is everything runServer needs; App.Run fills it from RunOptions.
type runtimeConfig struct {
	handler         http.Handler
	logger          *slog.Logger
	baseCtx         context.Context
	address         string
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

func (cfg *runtimeConfig) normalize() {
	if cfg.address == "" {
		cfg.address = defaultAddress
	}
	if cfg.shutdownTimeout <= 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	if cfg.baseCtx == nil {
		cfg.baseCtx = context.Background()
	}
}

func (cfg *runtimeConfig) server() *http.Server {
	return &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}

// runServer runs the startup hooks, serves until the base context is
// cancelled or the process gets SIGINT/SIGTERM, then drains connections and
// runs the shutdown hooks.
func runServer(cfg runtimeConfig) error {
	cfg.normalize()
	log := cfg.logger

	ctx, stop := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			log.Error("startup hook failed", slog.Any("error", err))
			return err
		}
	}

	srv := cfg.server()
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	served := make(chan error, 1)
	go func() {
		defer close(served)
		log.Info("listening", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			served <- err
		}
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	return shutdown(srv, cfg)
}

// shutdown stops accepting requests, waits for in-flight ones and then runs
// every hook, even after a failure. Hooks share one timeout.
func shutdown(srv *http.Server, cfg runtimeConfig) error {
	log := cfg.logger
	log.Info("shutting down", slog.Duration("timeout", cfg.shutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Error("stopped with errors", slog.Any("error", err))
		return err
	}
	log.Info("stopped")
	return nil
}
