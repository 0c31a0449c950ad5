package providers

import (
	"github.com/samber/do/v2"

	"github.com/echoverse/echo-web/internal/config"
	"github.com/echoverse/echo-web/internal/gateway"
	"github.com/echoverse/echo-web/internal/logger"
)

// GatewayClientHandle wraps the gateway client with Shutdownable.
type GatewayClientHandle struct {
	*gateway.Client
}

// Shutdown implements do.Shutdownable.
func (h *GatewayClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideGatewayClient provides the REST gateway client shared by every service.
func ProvideGatewayClient(i do.Injector) (*GatewayClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := gateway.New(gateway.Options{
		BaseURL:   cfg.Gateway.BaseURL,
		Timeout:   cfg.Gateway.Timeout,
		RPS:       cfg.Gateway.RPS,
		Burst:     cfg.Gateway.Burst,
		UserAgent: "echo-web/" + Version,
	}, log.Component("gateway").Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Gateway client ready",
		"base_url", client.BaseURL(),
		"timeout", cfg.Gateway.Timeout,
		"rps", cfg.Gateway.RPS,
	)

	return &GatewayClientHandle{Client: client}, nil
}
