package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decred/slog"
	"golang.org/x/sync/errgroup"

	"pong-server/internal/server"
)

const (
	shutdownTimeout     = 10 * time.Second
	sessionCloseTimeout = 3 * time.Second
)

func newLogger(level string) slog.Logger {
	log := slog.NewBackend(os.Stdout).Logger("PONG")

	lvl, ok := slog.LevelFromString(level)
	if !ok {
		log.Warnf("Unknown LOG_LEVEL %q, using %s", level, server.DefaultLogLevel)
		lvl = slog.LevelInfo
	}
	log.SetLevel(lvl)
	return log
}

func gracefulShutdown(ctx context.Context, customServer *server.Server, httpServer *http.Server, log slog.Logger) error {
	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Close player sockets first; the http server does not track hijacked
	// connections. Unresponsive peers are dropped once sessionCloseTimeout
	// passes.
	sessionCtx, cancelSessions := context.WithTimeout(shutdownCtx, sessionCloseTimeout)
	defer cancelSessions()
	if err := customServer.Shutdown(sessionCtx); err != nil {
		log.Warnf("Error during session shutdown: %v", err)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server forced to shutdown: %w", err)
	}
	return nil
}

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	server.UseLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	customServer, httpServer := server.NewServer(cfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return customServer.Run(gctx)
	})

	g.Go(func() error {
		log.Infof("Pong server listening on port %d", cfg.Port)
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return gracefulShutdown(gctx, customServer, httpServer, log)
	})

	if err := g.Wait(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	log.Infof("Graceful shutdown complete.")
}
