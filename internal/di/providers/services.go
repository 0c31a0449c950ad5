package providers

import (
	"github.com/samber/do/v2"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/config"
	"github.com/echoverse/echo-web/internal/logger"
	"github.com/echoverse/echo-web/internal/service"
)

// ProvideResolver provides the slug resolver.
func ProvideResolver(i do.Injector) (*catalog.Resolver, error) {
	gw := do.MustInvoke[*GatewayClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewResolver(gw.Client, log.Component("resolver").Logger), nil
}

// ProvideCatalogService provides the public catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	gw := do.MustInvoke[*GatewayClientHandle](i)
	resolver := do.MustInvoke[*catalog.Resolver](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(gw.Client, resolver, service.CatalogOptions{
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		RelatedLimit:  cfg.Catalog.RelatedLimit,
	}, log.Component("catalog").Logger), nil
}

// ProvideAdminService provides the admin console service.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	gw := do.MustInvoke[*GatewayClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(gw.Client, log.Component("admin").Logger), nil
}
