// Package di provides dependency injection configuration for the Echo web service.
package di

import (
	"github.com/samber/do/v2"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/config"
	"github.com/echoverse/echo-web/internal/dashboard"
	"github.com/echoverse/echo-web/internal/di/providers"
	"github.com/echoverse/echo-web/internal/logger"
	"github.com/echoverse/echo-web/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Gateway layer
	do.Provide(injector, providers.ProvideGatewayClient)
	do.Provide(injector, providers.ProvideResolver)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideAdminService)

	// Workers
	do.Provide(injector, providers.ProvideDashboardPoller)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the HTTP server is listening in the background.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	if _, err := do.Invoke[*providers.GatewayClientHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*catalog.Resolver](injector)

	// Business services
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)

	// Workers
	_ = do.MustInvoke[*dashboard.Poller](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
