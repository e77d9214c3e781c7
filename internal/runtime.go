package internal

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zenithgo/zenith/pkg/logger"
)

// runtimeConfig holds configuration for running the HTTP server.
type runtimeConfig struct {
	handler         http.Handler
	logger          *slog.Logger
	baseCtx         context.Context
	address         string
	routes          int
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

// runServer binds the listener, runs startup hooks and serves until the
// base context ends or SIGINT/SIGTERM arrives. The server is drained before
// shutdown hooks run; hooks run in reverse registration order so resources
// opened first are closed last.
func runServer(cfg runtimeConfig) error {
	cfg.address = cmp.Or(cfg.address, ":8080")
	cfg.shutdownTimeout = cmp.Or(cfg.shutdownTimeout, defaultShutdownTimeout)
	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}
	base := cfg.baseCtx
	if base == nil {
		base = context.Background()
	}

	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		return err
	}
	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			_ = ln.Close()
			log.Error("startup hook failed", slog.Any("error", err))
			return err
		}
	}

	server := &http.Server{
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting",
			slog.String("address", ln.Addr().String()),
			slog.Int("routes", cfg.routes),
		)
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(base), cfg.shutdownTimeout)
		defer cancel()

		errs := []error{server.Shutdown(shutdownCtx)}
		for i := len(cfg.shutdownHooks) - 1; i >= 0; i-- {
			if err := cfg.shutdownHooks[i](shutdownCtx); err != nil {
				log.Error("shutdown hook failed", slog.Any("error", err))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with errors", slog.Any("error", err))
		return err
	}
	log.Info("shutdown completed")
	return nil
}
