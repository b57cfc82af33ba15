package services

import (
	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/internal/infrastructure/brain"
	"github.com/theorem-health/avatar-gateway/internal/infrastructure/heygen"
	"github.com/theorem-health/avatar-gateway/internal/infrastructure/openai"
	"github.com/theorem-health/avatar-gateway/internal/services/chat"
)

type Services struct {
	cfg           *config.Config
	chatService   *chat.Service
	heygenService *heygen.Service
}

// InitializeServices wires the infrastructure clients into the domain
// services. Unconfigured providers initialise as nil and the dependent
// operations fail with configuration errors instead of crashing here.
func InitializeServices(cfg *config.Config) *Services {
	log.Info().Msg("Initializing core services")

	brainService := brain.NewService(cfg.Brain)
	if brainService == nil {
		log.Warn().Msg("Brain API not configured - BRAIN_API_URL missing")
	}

	fallbackService := openai.NewService(cfg.Fallback)
	heygenService := heygen.NewService(cfg.HeyGen)

	// chat.NewService takes interfaces; a typed nil pointer would not
	// compare equal to nil inside the resolver.
	var brainClient chat.BrainClient
	if brainService != nil {
		brainClient = brainService
	}
	var fallbackClient chat.FallbackClient
	if fallbackService != nil {
		fallbackClient = fallbackService
	}

	chatService := chat.NewService(cfg, brainClient, fallbackClient)

	log.Info().
		Bool("brain_configured", cfg.BrainConfigured()).
		Bool("fallback_configured", cfg.FallbackConfigured()).
		Bool("heygen_configured", cfg.HeyGenConfigured()).
		Bool("streaming_enabled", cfg.EnableStreaming).
		Msg("All services initialized")

	return &Services{
		cfg:           cfg,
		chatService:   chatService,
		heygenService: heygenService,
	}
}

// GetConfig returns the process configuration
func (s *Services) GetConfig() *config.Config {
	return s.cfg
}

// GetChatService returns the chat resolution service
func (s *Services) GetChatService() *chat.Service {
	return s.chatService
}

// GetHeyGenService returns the avatar session broker, or nil when the
// provider is not configured
func (s *Services) GetHeyGenService() *heygen.Service {
	return s.heygenService
}
