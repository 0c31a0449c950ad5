package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/echoverse/echo-web/internal/config"
	"github.com/echoverse/echo-web/internal/dashboard"
	"github.com/echoverse/echo-web/internal/logger"
)

// ProvideDashboardPoller provides the dashboard stats poller and starts it.
// The poller implements do.ShutdownerWithError, so the container stops it.
func ProvideDashboardPoller(i do.Injector) (*dashboard.Poller, error) {
	cfg := do.MustInvoke[*config.Config](i)
	gw := do.MustInvoke[*GatewayClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	poller := dashboard.NewPoller(gw.Client, cfg.Dashboard.RefreshInterval, log.Component("dashboard").Logger)
	poller.Start(context.Background())

	log.Info("Dashboard poller started", "interval", cfg.Dashboard.RefreshInterval)

	return poller, nil
}
