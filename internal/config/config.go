package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every environment-driven setting. It is built once at
// startup and passed explicitly into the services that need it; nothing
// reads the environment after Load returns.
type Config struct {
	Server    ServerConfig
	Brain     BrainConfig
	HeyGen    HeyGenConfig
	Fallback  FallbackConfig
	Voices    VoiceConfig
	RateLimit RateLimitConfig

	// EnableStreaming gates the SSE chat surface.
	EnableStreaming bool
	// UseOpenAIFallback forces the fallback provider even when a brain
	// endpoint is configured.
	UseOpenAIFallback bool
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// BrainConfig describes the remote brain API.
type BrainConfig struct {
	BaseURL       string
	QueryTimeout  time.Duration
	StreamTimeout time.Duration
}

// HeyGenConfig describes the avatar provider.
type HeyGenConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// FallbackConfig describes the fallback completion provider.
type FallbackConfig struct {
	APIKey string
	Model  string
}

// VoiceConfig carries the per-mode avatar voice identifiers.
type VoiceConfig struct {
	Clinic string
	Rehab  string
}

// RateLimitConfig describes the per-route request limits.
type RateLimitConfig struct {
	Enabled bool
	Chat    int
	Stream  int
	Session int
	Window  time.Duration
}

// Load builds the configuration from environment variables. Missing
// required settings do not fail the load; they degrade /health and fail
// the dependent operations instead.
func Load() (*Config, error) {
	addr, err := loadAddr()
	if err != nil {
		return nil, err
	}

	enableStreaming, err := parseBoolEnv("ENABLE_STREAMING", false)
	if err != nil {
		return nil, err
	}

	useFallback, err := parseBoolEnv("USE_OPENAI_FALLBACK", false)
	if err != nil {
		return nil, err
	}

	rateLimitEnabled, err := parseBoolEnv("RATELIMIT_ENABLED", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{Addr: addr},
		Brain: BrainConfig{
			BaseURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("BRAIN_API_URL")), "/"),
			QueryTimeout:  30 * time.Second,
			StreamTimeout: 60 * time.Second,
		},
		HeyGen: HeyGenConfig{
			APIKey:  strings.TrimSpace(os.Getenv("HEYGEN_API_KEY")),
			BaseURL: getEnvOrDefault("HEYGEN_BASE_URL", "https://api.heygen.com"),
			Timeout: 30 * time.Second,
		},
		Fallback: FallbackConfig{
			APIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:  getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Voices: VoiceConfig{
			Clinic: strings.TrimSpace(os.Getenv("VOICE_ID_CLINIC")),
			Rehab:  strings.TrimSpace(os.Getenv("VOICE_ID_REHAB")),
		},
		RateLimit: RateLimitConfig{
			Enabled: rateLimitEnabled,
			Chat:    parseIntEnv("RATELIMIT_CHAT", 120),
			Stream:  parseIntEnv("RATELIMIT_STREAM", 60),
			Session: parseIntEnv("RATELIMIT_SESSION", 30),
			Window:  time.Minute,
		},
		EnableStreaming:   enableStreaming,
		UseOpenAIFallback: useFallback,
	}, nil
}

// BrainConfigured reports whether the remote brain endpoint is set.
func (c *Config) BrainConfigured() bool {
	return c.Brain.BaseURL != ""
}

// HeyGenConfigured reports whether the avatar provider key is set.
func (c *Config) HeyGenConfigured() bool {
	return c.HeyGen.APIKey != ""
}

// FallbackConfigured reports whether the fallback provider key is set.
func (c *Config) FallbackConfigured() bool {
	return c.Fallback.APIKey != ""
}

// MissingRequired lists the required environment variables that are unset.
// A non-empty result degrades /health to unhealthy.
func (c *Config) MissingRequired() []string {
	var missing []string
	if !c.HeyGenConfigured() {
		missing = append(missing, "HEYGEN_API_KEY")
	}
	if !c.BrainConfigured() {
		missing = append(missing, "BRAIN_API_URL")
	}
	return missing
}

// VoiceFor returns the configured voice identifier for mode, if any.
func (c *Config) VoiceFor(mode string) string {
	switch mode {
	case "rehab":
		return c.Voices.Rehab
	default:
		return c.Voices.Clinic
	}
}

func loadAddr() (string, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	// Allow ":8080" or "127.0.0.1:8080" directly.
	if strings.Contains(port, ":") {
		return port, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid PORT value %q: %w", port, err)
	}

	return ":" + port, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return val
}
