package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.heygen.com", cfg.HeyGen.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Fallback.Model)
	assert.False(t, cfg.EnableStreaming)
	assert.False(t, cfg.UseOpenAIFallback)
}

func TestLoadAddr(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		want    string
		wantErr bool
	}{
		{"Default", "", ":8080", false},
		{"Bare port", "9090", ":9090", false},
		{"Full addr", "127.0.0.1:8081", "127.0.0.1:8081", false},
		{"Garbage", "not-a-port", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Server.Addr)
		})
	}
}

func TestMissingRequired(t *testing.T) {
	t.Setenv("HEYGEN_API_KEY", "")
	t.Setenv("BRAIN_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"HEYGEN_API_KEY", "BRAIN_API_URL"}, cfg.MissingRequired())

	t.Setenv("HEYGEN_API_KEY", "hg_test")
	t.Setenv("BRAIN_API_URL", "https://brain.example.com/")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.MissingRequired())
	assert.Equal(t, "https://brain.example.com", cfg.Brain.BaseURL)
}

func TestFlagParsing(t *testing.T) {
	t.Setenv("ENABLE_STREAMING", "true")
	t.Setenv("USE_OPENAI_FALLBACK", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.EnableStreaming)
	assert.True(t, cfg.UseOpenAIFallback)

	t.Setenv("ENABLE_STREAMING", "banana")
	_, err = Load()
	assert.Error(t, err)
}

func TestVoiceFor(t *testing.T) {
	t.Setenv("VOICE_ID_CLINIC", "voice-clinic")
	t.Setenv("VOICE_ID_REHAB", "voice-rehab")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "voice-clinic", cfg.VoiceFor("clinic"))
	assert.Equal(t, "voice-rehab", cfg.VoiceFor("rehab"))
	assert.Equal(t, "voice-clinic", cfg.VoiceFor(""))
}
