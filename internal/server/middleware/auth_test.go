package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todokeeper/internal/server/handlers"
	"github.com/iudanet/todokeeper/internal/server/jwt"
	"github.com/iudanet/todokeeper/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func newTestTokens(t *testing.T, opts ...jwt.Option) *jwt.Service {
	t.Helper()
	tokens, err := jwt.NewService(jwt.Config{
		Secret:     []byte("test-secret-key"),
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	}, opts...)
	require.NoError(t, err)
	return tokens
}

// testHandler is a simple handler that checks context values
func testHandler(t *testing.T, expectedUserID uuid.UUID, expectedEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.GetUserID(r.Context())
		require.True(t, ok, "user_id should be in context")
		assert.Equal(t, expectedUserID, userID)

		email, ok := handlers.GetEmail(r.Context())
		require.True(t, ok, "email should be in context")
		assert.Equal(t, expectedEmail, email)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// unreachable fails the test if the request gets past the middleware
func unreachable(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}
}

func assertUnauthorized(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Message)
}

func TestAuthMiddleware_Success(t *testing.T) {
	logger := setupTestLogger()
	tokens := newTestTokens(t)
	userID := uuid.New()

	// Generate valid token
	token, err := tokens.MintAccess(userID.String(), "user@example.com", 0)
	require.NoError(t, err)

	handler := AuthMiddleware(logger, tokens)(testHandler(t, userID, "user@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	logger := setupTestLogger()
	tokens := newTestTokens(t)
	userID := uuid.New()

	token, err := tokens.MintAccess(userID.String(), "user@example.com", 0)
	require.NoError(t, err)

	handler := AuthMiddleware(logger, tokens)(testHandler(t, userID, "user@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "bearer "+token.Value)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	logger := setupTestLogger()
	handler := AuthMiddleware(logger, newTestTokens(t))(unreachable(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assertUnauthorized(t, w)
}

func TestAuthMiddleware_InvalidAuthHeaderFormat(t *testing.T) {
	logger := setupTestLogger()
	handler := AuthMiddleware(logger, newTestTokens(t))(unreachable(t))

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "Missing Bearer prefix", authHeader: "some-token"},
		{name: "Wrong prefix", authHeader: "Basic dXNlcjpwYXNz"},
		{name: "Only Bearer", authHeader: "Bearer"},
		{name: "Bearer with empty token", authHeader: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", tt.authHeader)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assertUnauthorized(t, w)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	logger := setupTestLogger()
	handler := AuthMiddleware(logger, newTestTokens(t))(unreachable(t))

	tests := []struct {
		name  string
		token string
	}{
		{name: "Malformed token", token: "not.a.valid.jwt"},
		{name: "Random string", token: "randomstring"},
		{name: "Three dots", token: "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assertUnauthorized(t, w)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	logger := setupTestLogger()

	// Токен выпущен два часа назад со сроком жизни в час
	past := time.Now().Add(-2 * time.Hour)
	minter := newTestTokens(t, jwt.WithClock(func() time.Time { return past }))
	token, err := minter.MintAccess(uuid.NewString(), "user@example.com", time.Hour)
	require.NoError(t, err)

	handler := AuthMiddleware(logger, newTestTokens(t))(unreachable(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assertUnauthorized(t, w)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	logger := setupTestLogger()
	tokens := newTestTokens(t)

	token, err := tokens.MintRefresh(uuid.NewString(), 0)
	require.NoError(t, err)

	handler := AuthMiddleware(logger, tokens)(unreachable(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assertUnauthorized(t, w)
}

func TestAuthMiddleware_TokenWithWrongSecret(t *testing.T) {
	logger := setupTestLogger()

	other, err := jwt.NewService(jwt.Config{
		Secret:     []byte("wrong-secret"),
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	token, err := other.MintAccess(uuid.NewString(), "user@example.com", 0)
	require.NoError(t, err)

	handler := AuthMiddleware(logger, newTestTokens(t))(unreachable(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assertUnauthorized(t, w)
}

func TestAuthMiddleware_NonUUIDSubject(t *testing.T) {
	logger := setupTestLogger()
	tokens := newTestTokens(t)

	token, err := tokens.MintAccess("user-42", "user@example.com", 0)
	require.NoError(t, err)

	handler := AuthMiddleware(logger, tokens)(unreachable(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assertUnauthorized(t, w)
}
