package api

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig — конфигурация HTTP сервера.
type ServerConfig struct {
	// Port — порт HTTP сервера.
	Port string `env:"API_PORT" envDefault:"8080"`

	// MaxControls — сколько контролов держать в памяти одновременно.
	// При переполнении самый давний контрол размонтируется.
	MaxControls int `env:"FEEDBACK_MAX_CONTROLS" envDefault:"1024"`

	// ShutdownTimeout — время на graceful shutdown.
	ShutdownTimeout time.Duration `env:"API_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadServerConfig читает ServerConfig из переменных окружения.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxControls <= 0 {
		return ServerConfig{}, fmt.Errorf("FEEDBACK_MAX_CONTROLS must be positive, got %d", cfg.MaxControls)
	}
	return cfg, nil
}

// Addr возвращает адрес для http.Server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
