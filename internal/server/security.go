package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// SecurityConfig configures the security middleware and request limits.
type SecurityConfig struct {
	// EnableCORS adds CORS headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists accepted origins; "*" accepts any.
	AllowedOrigins []string
	// AllowedMethods is advertised in Access-Control-Allow-Methods.
	AllowedMethods []string
	// MaxDigits caps the length of each operand.
	MaxDigits int
	// RequestsPerSecond is the sustained request rate; 0 disables limiting.
	RequestsPerSecond float64
	// Burst is the number of requests accepted above the sustained rate.
	Burst int
}

// DefaultSecurityConfig returns the settings used when none are given.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:        true,
		AllowedOrigins:    []string{"*"},
		AllowedMethods:    []string{"GET", "OPTIONS"},
		MaxDigits:         1_000_000,
		RequestsPerSecond: 100,
		Burst:             200,
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin, or ""
// when origin is not accepted.
func (c SecurityConfig) allowedOrigin(origin string) string {
	if slices.Contains(c.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(c.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// SecurityMiddleware sets defensive response headers, answers CORS
// preflight requests and forwards everything else to next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	methods := strings.Join(config.AllowedMethods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := config.allowedOrigin(r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				h.Set("Access-Control-Max-Age", strconv.Itoa(86400))
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// RateLimitMiddleware rejects requests above the configured rate with 429.
// The limit is shared by all clients.
func RateLimitMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	if config.RequestsPerSecond <= 0 {
		return next
	}
	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), max(config.Burst, 1))
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}
