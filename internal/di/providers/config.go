// Package providers contains dependency injection providers for the Echo web service.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/echoverse/echo-web/internal/config"
	"github.com/echoverse/echo-web/internal/logger"
)

// ProvideConfig provides the application configuration from the process arguments.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load(os.Args[1:])
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Echo web",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"gateway", cfg.Gateway.BaseURL,
		"version", Version,
	)

	return log, nil
}
