package heygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

// Service brokers short-lived session credentials with the HeyGen
// streaming API so the browser never sees the long-lived API key.
type Service struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewService returns nil when the provider key is not configured.
func NewService(cfg config.HeyGenConfig) *Service {
	if cfg.APIKey == "" {
		log.Warn().Msg("HeyGen service not configured - HEYGEN_API_KEY missing")
		return nil
	}

	return &Service{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type tokenResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// CreateToken requests a short-lived streaming access token for the
// browser SDK.
func (s *Service) CreateToken(ctx context.Context) (string, error) {
	body, err := s.post(ctx, "/v1/streaming.create_token", map[string]interface{}{})
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", apperr.Wrap(apperr.Upstream, err, "HeyGen error: malformed response")
	}

	if resp.Data.Token == "" {
		return "", apperr.New(apperr.Upstream, "HeyGen token missing: %s", string(body))
	}

	return resp.Data.Token, nil
}

// StopSession tears down a provider session.
func (s *Service) StopSession(ctx context.Context, sessionID string) error {
	_, err := s.post(ctx, "/v1/streaming.stop", map[string]interface{}{
		"session_id": sessionID,
	})
	return err
}

func (s *Service) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal HeyGen request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HeyGen request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "HeyGen error")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "HeyGen error")
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("HeyGen API returned error status")
		return nil, apperr.New(apperr.Upstream, "HeyGen error: status %d", resp.StatusCode)
	}

	return body, nil
}
