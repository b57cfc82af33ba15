package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/internal/services/chat/models"
	"github.com/theorem-health/avatar-gateway/pkg/apperr"
)

// Service resolves chat turns into responses. The decision order is
// fixed: cached answer, then the remote brain, then the local fallback.
type Service struct {
	cfg      *config.Config
	brain    BrainClient
	fallback FallbackClient
}

// NewService wires the resolver. Either client may be nil when its
// provider is not configured; the resolver degrades accordingly.
func NewService(cfg *config.Config, brain BrainClient, fallback FallbackClient) *Service {
	return &Service{
		cfg:      cfg,
		brain:    brain,
		fallback: fallback,
	}
}

// Resolve turns one ChatTurn into a ResolvedResponse. Resolution is
// atomic: it either fully succeeds or returns a classified error.
func (s *Service) Resolve(ctx context.Context, turn models.ChatTurn) (*models.ResolvedResponse, error) {
	if answer, ok := MatchCached(turn.Message); ok {
		log.Debug().Str("mode", turn.Mode).Msg("Cache hit for chat turn")
		return &models.ResolvedResponse{
			Response: answer,
			Chunks:   ChunkSentences(answer),
			Safety:   models.Safety{},
			Meta: map[string]interface{}{
				"source":     models.SourceCache,
				"latency_ms": 0,
			},
		}, nil
	}

	if s.useBrain() {
		return s.resolveBrain(ctx, turn)
	}

	return s.resolveFallback(ctx, turn)
}

func (s *Service) useBrain() bool {
	return s.brain != nil && s.cfg.BrainConfigured() && !s.cfg.UseOpenAIFallback
}

func (s *Service) resolveBrain(ctx context.Context, turn models.ChatTurn) (*models.ResolvedResponse, error) {
	started := time.Now()

	result, err := s.brain.Query(ctx, turn)
	if err != nil {
		log.Error().Err(err).Str("mode", turn.Mode).Msg("Brain API query failed")
		return nil, err
	}

	log.Info().
		Dur("latency", time.Since(started)).
		Int("response_len", len(result.Response)).
		Msg("Brain API query completed")

	safety := models.Safety{}
	if result.Safety != nil {
		safety = *result.Safety
	}

	// Brain meta passes through verbatim; only the source tag is
	// defaulted when the upstream did not claim one.
	meta := result.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}
	if _, ok := meta["source"]; !ok {
		meta["source"] = models.SourceBrain
	}

	return &models.ResolvedResponse{
		Response: result.Response,
		Chunks:   ChunkSentences(result.Response),
		Safety:   safety,
		Meta:     meta,
	}, nil
}

func (s *Service) resolveFallback(ctx context.Context, turn models.ChatTurn) (*models.ResolvedResponse, error) {
	if s.fallback == nil {
		if s.cfg.BrainConfigured() {
			return nil, apperr.New(apperr.Configuration, "USE_OPENAI_FALLBACK is set but no fallback provider is configured")
		}
		return nil, apperr.New(apperr.Configuration, "BRAIN_API_URL not set and no fallback provider configured")
	}

	prompt, err := SystemPromptFor(turn.Mode)
	if err != nil {
		return nil, err
	}

	text, err := s.fallback.Complete(ctx, prompt, turn)
	if err != nil {
		log.Error().Err(err).Str("mode", turn.Mode).Msg("Fallback completion failed")
		return nil, err
	}

	return &models.ResolvedResponse{
		Response: text,
		Chunks:   ChunkSentences(text),
		Safety:   models.Safety{},
		Meta: map[string]interface{}{
			"source": models.SourceFallback,
		},
	}, nil
}
