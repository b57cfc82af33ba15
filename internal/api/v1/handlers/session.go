package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/internal/infrastructure/heygen"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
	"github.com/theorem-health/avatar-gateway/pkg/httpext"
)

type sessionStartRequest struct {
	AvatarID string `json:"avatar_id" validate:"required"`
	Mode     string `json:"mode" validate:"omitempty,oneof=clinic rehab"`
}

type sessionStartResponse struct {
	Token   string `json:"token"`
	VoiceID string `json:"voice_id,omitempty"`
}

type sessionStopRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// HandleSessionStart brokers a short-lived avatar session token for the
// browser SDK. The provider protocol is opaque to this gateway; only the
// token comes back.
func HandleSessionStart(cfg *config.Config, heygenService *heygen.Service, w http.ResponseWriter, r *http.Request) {
	var req sessionStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Session start validation failed")
		httpext.JsonError(w, "Invalid request: avatar_id is required", http.StatusBadRequest)
		return
	}

	if heygenService == nil {
		httpext.JsonError(w, "HEYGEN_API_KEY not set", http.StatusInternalServerError)
		return
	}

	token, err := heygenService.CreateToken(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create HeyGen session token")
		httpext.JsonError(w, err.Error(), apperr.Status(err))
		return
	}

	log.Info().Str("avatar_id", req.AvatarID).Str("mode", req.Mode).Msg("Issued avatar session token")

	httpext.JsonResponse(w, sessionStartResponse{
		Token:   token,
		VoiceID: cfg.VoiceFor(req.Mode),
	}, http.StatusOK)
}

// HandleSessionStop tears down an avatar provider session.
func HandleSessionStop(heygenService *heygen.Service, w http.ResponseWriter, r *http.Request) {
	var req sessionStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		httpext.JsonError(w, "Invalid request: session_id is required", http.StatusBadRequest)
		return
	}

	if heygenService == nil {
		httpext.JsonError(w, "HEYGEN_API_KEY not set", http.StatusInternalServerError)
		return
	}

	if err := heygenService.StopSession(r.Context(), req.SessionID); err != nil {
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("Failed to stop HeyGen session")
		httpext.JsonError(w, err.Error(), apperr.Status(err))
		return
	}

	httpext.JsonResponse(w, map[string]bool{"stopped": true}, http.StatusOK)
}
