// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Server holds the runtime settings for modelval-server.
type Server struct {
	// Addr is the listen address.
	Addr string `env:"MODELVAL_ADDR" envDefault:":8080"`

	// BasePath prefixes every mounted route.
	BasePath string `env:"MODELVAL_BASE_PATH" envDefault:""`

	// DBPath is the SQLite file backing the model registry. Empty disables
	// persistence.
	DBPath string `env:"MODELVAL_DB_PATH" envDefault:""`

	// ModelSource is a path or URL to a model definition loaded at startup.
	ModelSource string `env:"MODELVAL_MODEL" envDefault:""`

	// ModelName selects the registry entry loaded at startup when ModelSource
	// is unset.
	ModelName string `env:"MODELVAL_MODEL_NAME" envDefault:""`

	// RootType is the default validation target recorded with the startup
	// model.
	RootType string `env:"MODELVAL_ROOT_TYPE" envDefault:""`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"MODELVAL_LOG_LEVEL" envDefault:"info"`

	// LogFormat is json or text.
	LogFormat string `env:"MODELVAL_LOG_FORMAT" envDefault:"text"`

	// ShutdownTimeoutSeconds caps graceful shutdown.
	ShutdownTimeoutSeconds int `env:"MODELVAL_SHUTDOWN_TIMEOUT" envDefault:"10"`
}

// ParseServer loads server configuration from environment variables.
func ParseServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
