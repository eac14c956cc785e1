package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetview/internal/cache"
	"budgetview/internal/config"
	"budgetview/internal/core"
	apphttp "budgetview/internal/http"
	applog "budgetview/internal/log"
	"budgetview/internal/services"
	"budgetview/internal/ynab"
)

func main() {
	logger := applog.New(applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	formatter, err := core.NewCurrencyFormatter(cfg.Locale, cfg.CurrencyCode)
	if err != nil {
		logger.Error("Invalid display configuration", applog.FieldError, err,
			"locale", cfg.Locale, "currency", cfg.CurrencyCode)
		os.Exit(1)
	}

	client := ynab.NewClient(cfg.APIBaseURL, cfg.AccessToken)
	loader := services.NewLoader(client, cfg.SnapshotTTL, cfg.FetchTimeout)

	srv := apphttp.NewServer(":"+cfg.Port, loader, formatter, cfg.ExcludedGroups)

	// Configure server timeouts and limits. Chart rendering can take a
	// moment, so the write timeout is the generous one.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	caches := cache.NewManager()
	caches.Register(loader.Snapshots())
	caches.Register(srv.ChartCache())
	caches.StartCleanup(time.Minute)

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

		caches.Stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting budgetview server", "port", cfg.Port, "api_url", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
