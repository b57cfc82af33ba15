package handlers

import (
	"net/http"

	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/pkg/httpext"
)

const serviceVersion = "1.0.0"

type rootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status             string `json:"status"`
	HeyGenConfigured   bool   `json:"heygen_configured"`
	BrainConfigured    bool   `json:"brain_configured"`
	FallbackConfigured bool   `json:"fallback_configured"`
	CacheEnabled       bool   `json:"cache_enabled"`
	StreamingEnabled   bool   `json:"streaming_enabled"`
}

type unhealthyResponse struct {
	Status  string   `json:"status"`
	Missing []string `json:"missing_env_vars"`
}

// HandleRoot reports the service identity.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, rootResponse{
		Service: "theorem-avatar-gateway",
		Version: serviceVersion,
		Status:  "running",
	}, http.StatusOK)
}

// HandleHealth reports configuration-presence flags, never secrets.
// Missing required settings degrade the status rather than crash anything.
func HandleHealth(cfg *config.Config, w http.ResponseWriter, r *http.Request) {
	if missing := cfg.MissingRequired(); len(missing) > 0 {
		httpext.JsonResponse(w, unhealthyResponse{
			Status:  "unhealthy",
			Missing: missing,
		}, http.StatusServiceUnavailable)
		return
	}

	httpext.JsonResponse(w, healthResponse{
		Status:             "healthy",
		HeyGenConfigured:   cfg.HeyGenConfigured(),
		BrainConfigured:    cfg.BrainConfigured(),
		FallbackConfigured: cfg.FallbackConfigured(),
		CacheEnabled:       true,
		StreamingEnabled:   cfg.EnableStreaming,
	}, http.StatusOK)
}
