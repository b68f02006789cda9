package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/todokeeper/internal/server/jwt"
	"github.com/iudanet/todokeeper/internal/server/service"
	"github.com/iudanet/todokeeper/internal/server/storage/sqlite"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// testEnv собирает handler'ы поверх in-memory SQLite
type testEnv struct {
	store  *sqlite.Storage
	tokens *jwt.Service
	auth   *AuthHandler
	tasks  *TaskHandler
	authSv *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := setupTestLogger()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := jwt.NewService(jwt.Config{
		Secret:     []byte("test-secret"),
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	})
	require.NoError(t, err)

	authSv := service.NewAuthService(logger, store, tokens, bcrypt.MinCost)
	taskSv := service.NewTaskService(logger, store)

	return &testEnv{
		store:  store,
		tokens: tokens,
		authSv: authSv,
		auth:   NewAuthHandler(logger, authSv),
		tasks:  NewTaskHandler(logger, taskSv),
	}
}

// registerUser регистрирует пользователя напрямую через сервис
func (e *testEnv) registerUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := e.authSv.Register(context.Background(), email, "pw12345")
	require.NoError(t, err)
	return user.ID
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

// authedRequest создает запрос с идентичностью в контексте, как после auth middleware
func authedRequest(method, target string, body *bytes.Reader, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(WithIdentity(req.Context(), userID, "user@example.com"))
}
