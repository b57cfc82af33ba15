package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/services/chat"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
	"github.com/theorem-health/avatar-gateway/pkg/httpext"
)

// a single validator instance caches struct metadata across requests
var validate = validator.New(validator.WithRequiredStructEnabled())

// HandleChat resolves one chat turn into a single JSON response.
func HandleChat(chatService *chat.Service, w http.ResponseWriter, r *http.Request) {
	var turn models.ChatTurn

	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(turn); err != nil {
		log.Warn().Err(err).Msg("Chat request validation failed")
		httpext.JsonError(w, "Invalid request: mode must be clinic or rehab and message must be non-empty", http.StatusBadRequest)
		return
	}

	log.Info().
		Str("mode", turn.Mode).
		Int("history_len", len(turn.History)).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat request")

	resp, err := chatService.Resolve(r.Context(), turn)
	if err != nil {
		log.Error().Err(err).Str("mode", turn.Mode).Msg("Failed to resolve chat turn")
		httpext.JsonError(w, err.Error(), apperr.Status(err))
		return
	}

	httpext.JsonResponse(w, resp, http.StatusOK)
}
