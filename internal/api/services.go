package api

import (
	"github.com/echoverse/echo-web/internal/dashboard"
	"github.com/echoverse/echo-web/internal/service"
)

// Services groups the business services used by the HTTP server.
type Services struct {
	Catalog   *service.CatalogService
	Admin     *service.AdminService
	Dashboard *dashboard.Poller
}

// Options configures the HTTP surface.
// Zero AdminRPS disables the admin write limiter.
type Options struct {
	CORSOrigins []string
	Version     string
	AdminRPS    float64
	AdminBurst  int
}
