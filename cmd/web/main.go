// Command web serves the catalog analysis API: dataset summary and listing,
// OLS regression reports, health probes, and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"steamlens/internal/config"
	"steamlens/internal/fetch"
	"steamlens/internal/infrastructure"
	"steamlens/internal/services"
	transport "steamlens/internal/transport/http"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := infrastructure.NewMetrics(registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := services.NewDatasetService(cfg.Dataset, logger, metrics)
	service.SetFetcher(fetch.NewFetcher(logger))

	// Warm load: a missing dump is not fatal, the readiness probe stays
	// 503 until a fetch succeeds.
	if err := service.Load(ctx); err != nil {
		logger.Warn("initial dataset load failed, serving without data",
			slog.String("error", err.Error()))
	}

	router := transport.NewRouter(transport.RouterOptions{
		Service:        service,
		Logger:         logger,
		Metrics:        metrics,
		RateLimit:      cfg.RateLimit,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Version:        version,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			slog.String("addr", server.Addr),
			slog.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
