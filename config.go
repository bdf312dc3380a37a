package server

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
)

// Config controls one server instance. The zero value is usable: an
// automatically selected port, the embedded viewer bundle, and the default
// queue bound.
type Config struct {
	// Port is the exact port to bind. Zero selects the first free port in
	// the automatic range.
	Port int `env:"SCENECAST_PORT"`
	// QueueSize bounds each connection's outbound queue.
	QueueSize int `env:"SCENECAST_QUEUE_SIZE"`
	// AssetsDir overrides the embedded viewer bundle with an on-disk
	// directory holding index.html, main.min.js, and favicon.ico.
	AssetsDir string `env:"SCENECAST_ASSETS_DIR"`
	// Logger receives diagnostics. Nil means log.Default().
	Logger *log.Logger `env:"-"`
}

// DefaultConfig returns the configuration a bare instance runs with.
func DefaultConfig() Config {
	return Config{QueueSize: defaultQueueSize}
}

// ConfigFromEnv layers SCENECAST_* environment variables over the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
