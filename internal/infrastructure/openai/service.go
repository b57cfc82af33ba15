package openai

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

// Completion bounds keep fallback answers short enough for speech.
const (
	maxCompletionTokens   = 300
	completionTemperature = 0.7
)

// Service is the fallback completion provider, used when the brain API
// is unavailable or explicitly overridden.
type Service struct {
	client *openai.Client
	model  string
}

// NewService returns nil when no fallback key is configured.
func NewService(cfg config.FallbackConfig) *Service {
	if cfg.APIKey == "" {
		log.Warn().Msg("Fallback provider not configured - OPENAI_API_KEY missing")
		return nil
	}

	return &Service{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
	}
}

// Complete requests one bounded completion: system prompt first, then the
// caller-supplied history, then the new user message.
func (s *Service) Complete(ctx context.Context, systemPrompt string, turn models.ChatTurn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turn.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range turn.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: turn.Message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: completionTemperature,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		// No gateway hop is involved, so the provider failure reports
		// as 500 rather than 502.
		return "", apperr.Wrap(apperr.Upstream, err, "OpenAI error").WithStatus(http.StatusInternalServerError)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.New(apperr.Upstream, "OpenAI error: no response choices returned").WithStatus(http.StatusInternalServerError)
	}

	return resp.Choices[0].Message.Content, nil
}
