// Package servertest запускает полноценный API поверх in-memory SQLite для
// тестов клиентских пакетов.
package servertest

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/todokeeper/internal/config"
	"github.com/iudanet/todokeeper/internal/server"
	"github.com/iudanet/todokeeper/internal/server/jwt"
	"github.com/iudanet/todokeeper/internal/server/service"
	"github.com/iudanet/todokeeper/internal/server/storage/sqlite"
)

// Option меняет конфигурацию тестового сервера
type Option func(*config.Config)

// WithAccessTTL задает время жизни access token
func WithAccessTTL(minutes int) Option {
	return func(c *config.Config) {
		c.AccessTokenExpireMinutes = minutes
	}
}

// Backend тестовый сервер и его токен-сервис
type Backend struct {
	*httptest.Server
	Tokens *jwt.Service
	Store  *sqlite.Storage
}

// New запускает сервер и останавливает его в t.Cleanup
func New(t testing.TB, opts ...Option) *Backend {
	t.Helper()

	cfg := &config.Config{
		Env: config.EnvLocal,
		JWT: config.JWT{
			SecretKey:                "servertest-secret",
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 15,
			RefreshTokenExpireDays:   7,
		},
		HTTPServer: config.HTTPServer{ShutdownTimeout: time.Second},
		BcryptCost: bcrypt.MinCost,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	tokens, err := jwt.NewService(cfg.JWTConfig())
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	srv := server.New(cfg, server.Deps{
		Logger:  logger,
		Tokens:  tokens,
		Auth:    service.NewAuthService(logger, store, tokens, cfg.BcryptCost),
		Tasks:   service.NewTaskService(logger, store),
		DB:      store,
		Version: "servertest",
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = store.Close()
	})

	return &Backend{Server: ts, Tokens: tokens, Store: store}
}
