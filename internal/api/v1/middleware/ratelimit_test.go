package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/theorem-health/avatar-gateway/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Window: time.Minute}
	handler := RateLimit(cfg, "chat", 1)(okHandler())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Window: time.Minute}
	handler := RateLimit(cfg, "chat", 2)(okHandler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitKeysByForwardedFor(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Window: time.Minute}
	handler := RateLimit(cfg, "chat", 1)(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/chat", nil)
	first.Header.Set("X-Forwarded-For", "1.2.3.4")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	second := httptest.NewRequest(http.MethodPost, "/chat", nil)
	second.Header.Set("X-Forwarded-For", "5.6.7.8")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)

	repeat := httptest.NewRequest(http.MethodPost, "/chat", nil)
	repeat.Header.Set("X-Forwarded-For", "1.2.3.4")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, repeat)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitUsesFirstForwardedHop(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Window: time.Minute}
	handler := RateLimit(cfg, "chat", 1)(okHandler())

	direct := httptest.NewRequest(http.MethodPost, "/chat", nil)
	direct.Header.Set("X-Forwarded-For", "1.2.3.4")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, direct)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same client arriving through an extra proxy hop shares the budget.
	hopped := httptest.NewRequest(http.MethodPost, "/chat", nil)
	hopped.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, hopped)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
