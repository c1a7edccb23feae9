package middlewares

import (
	"context"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate requires a bearer session token and puts the wallet account
// and view session id on the context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		ctx, err := m.withSession(r.Context(), token)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate rejected session token",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches the session when a valid bearer token is
// present and passes the request through untouched otherwise.
func (m *Middlewares) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx, err := m.withSession(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) withSession(ctx context.Context, token string) (context.Context, error) {
	claims, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
	if err != nil {
		return ctx, err
	}
	ctx = context.WithValue(ctx, constvars.CONTEXT_ACCOUNT_KEY, strings.ToLower(claims.Account))
	ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_ID_KEY, claims.SessionID)
	return ctx, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
