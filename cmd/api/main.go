// Package main is the entry point for the lunch officer API server.
//
// It loads the configuration and the cafe catalog, builds the HTTP server
// with the core chassis (middleware, routing, health checks), and serves
// decisions until SIGINT or SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"lunchofficer/internal/api/handlers"
	"lunchofficer/internal/catalog"
	"lunchofficer/internal/config"
	"lunchofficer/internal/core"
	"lunchofficer/internal/lunch"
	"lunchofficer/internal/types"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP listener.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("lunch officer API starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"port", cfg.Server.Port,
	)

	srv, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("listening on port %s: %w", cfg.Server.Port, err)
	}
	return serve(ctx, srv, lis, logger)
}

// buildServer loads the catalog and wires the decision handler and health
// probes into a mounted server.
func buildServer(cfg *config.Config, logger *slog.Logger) (*core.Server, error) {
	defaults, err := catalog.Load(cfg.Lunch.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded",
		"path", cfg.Lunch.CatalogPath,
		"cafes", len(defaults.Cafes),
		"preferences", len(defaults.Preferences),
	)

	policy, err := lunch.ParseUnknownWeatherPolicy(cfg.Lunch.UnknownWeatherPolicy)
	if err != nil {
		return nil, fmt.Errorf("configuring officer: %w", err)
	}
	officer := lunch.NewOfficer(policy, logger)

	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	decisionHandler := handlers.NewDecisionHandler(
		officer,
		defaults,
		types.RealClock{},
		cfg.Lunch.Location,
		srv.Validator,
		logger,
	)
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars, func(r chi.Router) {
		decisionHandler.RegisterRoutes(r)
	})
	srv.HealthProbes = append(srv.HealthProbes, catalog.NewProbe(cfg.Lunch.CatalogPath))

	srv.MountRoutes()
	return srv, nil
}

// serve runs the HTTP listener until ctx is cancelled or the listener fails,
// then shuts the server down gracefully.
func serve(ctx context.Context, srv *core.Server, lis net.Listener, logger *slog.Logger) error {
	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", lis.Addr().String())
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: false,
	})
	return slog.New(handler)
}
