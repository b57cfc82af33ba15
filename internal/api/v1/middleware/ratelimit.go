package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/theorem-health/avatar-gateway/internal/config"
	"github.com/theorem-health/avatar-gateway/pkg/httpext"
	"github.com/theorem-health/avatar-gateway/pkg/ratelimit"
)

// RateLimit guards a route with a per-IP sliding window of maxHits per
// cfg.Window. Disabled limiters pass everything through.
func RateLimit(cfg config.RateLimitConfig, route string, maxHits int) func(http.Handler) http.Handler {
	limiter := ratelimit.NewLimiter(cfg.Window, maxHits)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)

			if !limiter.Allow(ip) {
				log.Warn().Str("ip", ip).Str("route", route).Msg("Rate limit exceeded")
				httpext.JsonError(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys on the originating client. X-Forwarded-For may carry a
// proxy hop list; only the first entry identifies the caller.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}
