package relay

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerConfig — конфигурация процесса feedback-relay.
type ServerConfig struct {
	// Port — порт для /healthz и /metrics.
	Port string `env:"RELAY_PORT" envDefault:"8082"`

	// Prefetch — сколько сообщений брать из очереди за раз.
	Prefetch int `env:"RELAY_PREFETCH" envDefault:"10"`
}

// LoadServerConfig читает ServerConfig из переменных окружения.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr возвращает адрес для http.Server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
