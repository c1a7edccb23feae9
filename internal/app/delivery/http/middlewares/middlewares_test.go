package middlewares

import (
	"medimarket-service/internal/app/config"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newTestMiddlewares(t *testing.T, adminKey string) *Middlewares {
	t.Helper()
	internalConfig := &config.InternalConfig{
		App: config.App{
			MaxRequests:                2,
			MaxTimeRequestsPerSeconds:  60,
			RequestBodyLimitInMegabyte: 1,
		},
		JWT: config.AppJWT{Secret: testJWTSecret},
	}
	if adminKey != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
		require.NoError(t, err)
		internalConfig.App.AdminAPIKeyHash = string(hash)
	}
	return NewMiddlewares(zap.NewNop(), internalConfig)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(t, "")
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("Keeps the client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-1")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-1", seen)
		assert.Equal(t, "client-1", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Generates one when missing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestAuthenticate(t *testing.T) {
	m := newTestMiddlewares(t, "")
	var account, sessionID string
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account = utils.GetAccount(r.Context())
		sessionID = utils.GetSessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Valid token sets account and session", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("0xABC", "tab-1", testJWTSecret, 1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "0xabc", account)
		assert.Equal(t, "tab-1", sessionID)
	})

	t.Run("Missing token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("0xabc", "tab-1", "other-secret", 1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	m := newTestMiddlewares(t, "")
	called := false
	handler := m.OptionalAuthenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, utils.GetAccount(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
}

func TestRequireAdminAPIKey(t *testing.T) {
	const adminKey = "test-admin-api-key-12345"
	m := newTestMiddlewares(t, adminKey)
	handler := m.RequireAdminAPIKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, utils.IsAdmin(r.Context()))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}))

	t.Run("Valid API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/doctors/1/approve", nil)
		req.Header.Set(constvars.HeaderAPIKey, adminKey)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API key", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/admin/doctors/1/approve", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/doctors/1/approve", nil)
		req.Header.Set(constvars.HeaderAPIKey, "invalid-api-key")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("No hash configured refuses every key", func(t *testing.T) {
		unconfigured := newTestMiddlewares(t, "")
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(constvars.HeaderAPIKey, adminKey)
		rr := httptest.NewRecorder()

		unconfigured.RequireAdminAPIKey(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	m := newTestMiddlewares(t, "")
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
}

func TestRateLimit(t *testing.T) {
	m := newTestMiddlewares(t, "")
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
