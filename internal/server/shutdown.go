package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"autosales-dashboard/internal/config"
)

const hookTimeout = 10 * time.Second

type ShutdownHook func(ctx context.Context) error

type GracefulServer struct {
	server     *http.Server
	logger     *slog.Logger
	config     *config.Config
	shutdownFn []ShutdownHook
	mu         sync.RWMutex
}

func NewGracefulServer(server *http.Server, logger *slog.Logger, config *config.Config) *GracefulServer {
	return &GracefulServer{
		server: server,
		logger: logger,
		config: config,
	}
}

func (gs *GracefulServer) RegisterShutdownHook(fn ShutdownHook) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.shutdownFn = append(gs.shutdownFn, fn)
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (gs *GracefulServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", gs.server.Addr, err)
	}
	return gs.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or the server
// fails.
func (gs *GracefulServer) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)

	go func() {
		gs.logger.Info("starting server",
			"addr", ln.Addr().String(),
			"read_timeout", gs.config.Server.ReadTimeout,
			"write_timeout", gs.config.Server.WriteTimeout,
		)
		serverErrors <- gs.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		gs.logger.Info("shutdown signal received", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gs.config.Server.ShutdownTimeout)
		defer cancel()

		return gs.shutdown(shutdownCtx)
	}
}

func (gs *GracefulServer) shutdown(ctx context.Context) error {
	gs.logger.Info("starting graceful shutdown",
		"timeout", gs.config.Server.ShutdownTimeout,
	)

	gs.mu.RLock()
	hooks := append([]ShutdownHook(nil), gs.shutdownFn...)
	gs.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)

	for i, hook := range hooks {
		g.Go(func() error {
			hookCtx, cancel := context.WithTimeout(gctx, hookTimeout)
			defer cancel()

			gs.logger.Debug("executing shutdown hook", "hook_index", i)
			if err := hook(hookCtx); err != nil {
				gs.logger.Error("shutdown hook failed",
					"hook_index", i,
					"error", err,
				)
				return fmt.Errorf("shutdown hook %d failed: %w", i, err)
			}
			gs.logger.Debug("shutdown hook completed", "hook_index", i)
			return nil
		})
	}

	g.Go(func() error {
		gs.logger.Info("stopping HTTP server")
		if err := gs.server.Shutdown(ctx); err != nil {
			gs.logger.Error("HTTP server shutdown failed", "error", err)
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		gs.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			gs.logger.Warn("shutdown timeout exceeded, forcing exit")
		}
		return err
	}

	gs.logger.Info("graceful shutdown completed")
	return nil
}
