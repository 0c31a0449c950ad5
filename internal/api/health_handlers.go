package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns service health; the gateway is reported degraded when the last stats refresh failed",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy or degraded"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or degraded"`
	Version    string                     `json:"version" doc:"Service version"`
	Uptime     string                     `json:"uptime" doc:"Time since the server started"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"gateway": s.checkGateway(),
	}

	overall := "healthy"
	for _, c := range components {
		if c.Status != "healthy" {
			overall = "degraded"
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Version:    s.opts.Version,
			Uptime:     time.Since(s.started).Round(time.Second).String(),
			Components: components,
		},
	}, nil
}

// checkGateway reports the outcome of the most recent dashboard refresh.
// Health checks never call the gateway themselves.
func (s *Server) checkGateway() ComponentHealth {
	if s.services.Dashboard == nil {
		return ComponentHealth{Status: "healthy", Message: "not polled"}
	}

	snap := s.services.Dashboard.Snapshot()
	switch {
	case snap.LastError != "":
		return ComponentHealth{Status: "degraded", Message: snap.LastError}
	case snap.UpdatedAt.IsZero():
		return ComponentHealth{Status: "healthy", Message: "awaiting first refresh"}
	default:
		return ComponentHealth{Status: "healthy", Message: "last refresh " + snap.UpdatedAt.UTC().Format(time.RFC3339)}
	}
}
