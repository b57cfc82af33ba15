package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

// Service is the HTTP client for the remote brain API. The query and
// stream paths use separate clients because streaming responses are
// allowed to live much longer than a single-shot call.
type Service struct {
	client       *http.Client
	streamClient *http.Client
	baseURL      string
}

// NewService returns nil when no brain endpoint is configured.
func NewService(cfg config.BrainConfig) *Service {
	if cfg.BaseURL == "" {
		return nil
	}

	return &Service{
		client:       &http.Client{Timeout: cfg.QueryTimeout},
		streamClient: &http.Client{Timeout: cfg.StreamTimeout},
		baseURL:      cfg.BaseURL,
	}
}

type queryRequest struct {
	Mode      string           `json:"mode"`
	Message   string           `json:"message"`
	History   []models.Message `json:"history"`
	SessionID string           `json:"session_id,omitempty"`
}

// Query performs a single-shot brain call for one chat turn.
func (s *Service) Query(ctx context.Context, turn models.ChatTurn) (*models.BrainResult, error) {
	payload := queryRequest{
		Mode:      turn.Mode,
		Message:   turn.Message,
		History:   historyOrEmpty(turn.History),
		SessionID: turn.SessionID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal brain request: %w", err)
	}

	url := s.baseURL + "/api/brain/query"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create brain request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "Brain API error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Int("status", resp.StatusCode).Bytes("body", body).Msg("Brain API returned non-200 status")
		return nil, apperr.New(apperr.Upstream, "Brain API returned status %d", resp.StatusCode)
	}

	var result models.BrainResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "Brain API error: malformed response")
	}

	return &result, nil
}

func historyOrEmpty(history []models.Message) []models.Message {
	if history == nil {
		return []models.Message{}
	}
	return history
}
