// Package clienv loads configuration and the process logger for CLI
// commands.
package clienv

import (
	"fmt"
	"os"

	"github.com/qreserve/qreserve/internal/infrastructure/config"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Load resolves the environment (the ENV variable wins over the flag),
// reads the config and initializes the logger. The returned config carries
// the gin mode derived from the environment.
func Load(env, configPath string) (*config.Config, logger.Interface, error) {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = MapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
