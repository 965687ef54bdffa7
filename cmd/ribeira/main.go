package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ribeira/internal/config"
	"ribeira/internal/dataset"
	apphttp "ribeira/internal/http"
	"ribeira/internal/log"
	"ribeira/internal/observability"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	loader := dataset.NewLoader(logger.WithComponent(log.ComponentDataset))
	loader.Observe(
		func(path string, rows int, err error) {
			source := filepath.Base(path)
			if err != nil {
				metrics.SourceLoadErrors.WithLabelValues(source).Inc()
				return
			}
			metrics.SourceRows.WithLabelValues(source).Set(float64(rows))
		},
		func(path string, hit bool) {
			result := "miss"
			if hit {
				result = "hit"
			}
			metrics.LoaderLookups.WithLabelValues(result).Inc()
		},
	)

	snap := dataset.LoadSnapshot(context.Background(), loader, dataset.SourcePaths{
		Alerts:       cfg.AlertsPath(),
		Registry:     cfg.RegistryPath(),
		Conservation: cfg.ConservationPath(),
		Fire:         cfg.FirePath(),
	})

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		MapSampleCap:       cfg.MapSampleCap,
		MapSampleSeed:      cfg.MapSampleSeed,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, snap, metrics, logger.WithComponent(log.ComponentHTTP))

	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = cfg.IdleTimeout
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting ribeira server", "port", cfg.Port, "data_dir", cfg.DataDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
