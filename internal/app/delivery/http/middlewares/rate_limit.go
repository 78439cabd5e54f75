package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// CreateRateLimiters creates the per-IP limiter applied to every request and
// the limiter applied to requests that passed the API key check.
func (m *Middlewares) CreateRateLimiters() (normalLimiter, apiKeyLimiter func(next http.Handler) http.Handler) {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	normalLimiter = httprate.LimitByIP(m.InternalConfig.App.MaxRequests, window)
	apiKeyLimiter = httprate.LimitByIP(m.InternalConfig.App.APIKeyRateLimit, time.Minute)
	return normalLimiter, apiKeyLimiter
}
