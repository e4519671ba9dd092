// feedback-relay — пересылает score из RabbitMQ в HTTP backend.
//
// Relay:
//   - Читает очередь scores.relay
//   - Отправляет каждую запись в ingestion API один раз
//   - Ошибки логирует, сообщение отбрасывает (без retry)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/feedback/internal/mq"
	"github.com/shaiso/feedback/internal/relay"
	"github.com/shaiso/feedback/internal/scoring"
	"github.com/shaiso/feedback/internal/telemetry"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting feedback-relay")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	serverCfg, err := relay.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	backendCfg, err := telemetry.LoadConfig()
	if err != nil {
		logger.Error("failed to load backend config", "error", err)
		os.Exit(1)
	}

	client, err := scoring.NewHTTPClient(scoring.HTTPConfig{
		PublicKey: backendCfg.PublicKey,
		BaseURL:   backendCfg.BaseURL,
		Timeout:   backendCfg.RequestTimeout,
	})
	if err != nil {
		logger.Error("failed to create backend client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// RabbitMQ
	mqConn, err := mq.NewConnection(backendCfg.AMQPURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()
	logger.Info("RabbitMQ connected")

	if err := mq.SetupTopology(ctx, mqConn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}

	r := relay.New(relay.Config{
		Conn:       mqConn,
		Client:     client,
		Prefetch:   serverCfg.Prefetch,
		Registerer: prometheus.DefaultRegisterer,
		Logger:     logger,
	})
	r.Start(ctx)

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !mqConn.IsConnected() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("amqp disconnected"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Info("listening", "addr", serverCfg.Addr())
		if err := http.ListenAndServe(serverCfg.Addr(), mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	r.Stop()
	logger.Info("feedback-relay stopped")
}
