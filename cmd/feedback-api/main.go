// feedback-api — хостит контролы отзывов и доставляет score в backend.
//
// Каждый контрол — автомат отзыва о trace (кнопки 👍/👎, уточнение score
// и комментария). Подтверждённые score отдаются telemetry.Registry,
// который лениво создаёт клиент при первой отправке.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/feedback/internal/api"
	"github.com/shaiso/feedback/internal/telemetry"
)

var startTime = time.Now()

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting feedback-api")

	cfg, err := api.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Телеметрия: клиент создаётся при первом submit
	registry := telemetry.NewRegistry(telemetry.RegistryConfig{
		Environment: telemetry.ClientContext,
		Metrics:     telemetry.NewMetrics(prometheus.DefaultRegisterer),
		Logger:      logger,
	})

	controls, err := api.NewControlStore(cfg.MaxControls, logger)
	if err != nil {
		logger.Error("failed to create control store", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(api.Config{
		Controls:        controls,
		Submitter:       registry,
		TelemetryStatus: func() string { return registry.State().String() },
		Registerer:      prometheus.DefaultRegisterer,
		Logger:          logger,
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s telemetry=%s", time.Since(startTime), registry.State())
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Регистрируем API маршруты
	handler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: mux,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Дожидаемся уже переданных отправок
	if err := registry.Close(); err != nil {
		logger.Error("failed to close telemetry client", "error", err)
	}

	logger.Info("stopped")
}
