package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/services/chat"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/httpext"
)

// HandleStreamChat resolves one chat turn over SSE, one event per frame.
// Once headers are committed every failure is reported as a terminal
// error event rather than an HTTP status.
func HandleStreamChat(chatService *chat.Service, w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpext.JsonError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	var turn models.ChatTurn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(turn); err != nil {
		log.Warn().Err(err).Msg("Stream request validation failed")
		httpext.JsonError(w, "Invalid request: mode must be clinic or rehab and message must be non-empty", http.StatusBadRequest)
		return
	}

	log.Info().
		Str("mode", turn.Mode).
		Str("client_ip", r.RemoteAddr).
		Msg("Received stream chat request")

	httpext.SetupSSEHeaders(w)

	for event := range chatService.Stream(r.Context(), turn) {
		httpext.SendSSEChunk(w, flusher, event)
	}
}
