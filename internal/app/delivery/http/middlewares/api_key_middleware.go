package middlewares

import (
	"context"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminAPIKey checks x-api-key against the configured bcrypt hash and
// marks the request as admin.
func (m *Middlewares) RequireAdminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}

		hash := m.InternalConfig.App.AdminAPIKeyHash
		if hash == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
		if err != nil {
			m.Log.Warn("Middlewares.RequireAdminAPIKey invalid API key",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ADMIN_KEY, true)
		m.Log.Info("Middlewares.RequireAdminAPIKey authentication successful",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
