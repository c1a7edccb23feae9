package middlewares

import (
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit throttles per client IP. MaxTimeRequestsPerSeconds is the window
// length MaxRequests applies to.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, window)
}

// AccountRateLimit throttles authenticated callers by account, falling back
// to the client IP.
func (m *Middlewares) AccountRateLimit() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if account := utils.GetAccount(r.Context()); account != "" {
				return account, nil
			}
			return httprate.KeyByIP(r)
		}),
	)
}
