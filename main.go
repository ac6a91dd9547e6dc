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

	"github.com/gin-gonic/gin"
	"github.com/saqibullah/regreen-backend/api"
	"github.com/saqibullah/regreen-backend/barcode"
	"github.com/saqibullah/regreen-backend/config"
	"github.com/saqibullah/regreen-backend/logging"
	"github.com/saqibullah/regreen-backend/metrics"
	"github.com/saqibullah/regreen-backend/product"
)

const serviceName = "regreen-api"

func main() {
	envLoaded := config.LoadDotEnv()
	cfg := config.Load()

	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))
	slog.Info("env_file", "loaded", envLoaded)
	gin.SetMode(cfg.GinMode)

	products := product.NewClient(product.Options{
		URLTemplate: cfg.OFFAPIURL,
		UserAgent:   cfg.OFFUserAgent,
		Timeout:     cfg.OFFTimeout,
		Breaker: product.BreakerOptions{
			Enabled:      cfg.OFFBreakerEnabled,
			MinRequests:  uint32(cfg.OFFBreakerMinReqs),
			FailureRatio: cfg.OFFBreakerFailRatio,
			OpenTimeout:  cfg.OFFBreakerOpenFor,
		},
	})

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(serviceName)
	}

	handler := api.NewHandler(barcode.NewDecoder(), products, m)
	router := api.NewRouter(handler, api.RouterOptions{
		MaxUploadBytes: cfg.MaxUploadBytes,
		Metrics:        m,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server_starting", "addr", cfg.Addr(), "provider", api.APIProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}
}
