// Package server собирает HTTP API: маршруты, middleware и жизненный цикл http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/todokeeper/internal/config"
	"github.com/iudanet/todokeeper/internal/server/handlers"
	"github.com/iudanet/todokeeper/internal/server/jwt"
	"github.com/iudanet/todokeeper/internal/server/middleware"
)

const (
	apiPrefix  = "/api/v1"
	healthPath = apiPrefix + "/health"
)

// Deps зависимости роутера
type Deps struct {
	Logger  *slog.Logger
	Tokens  *jwt.Service
	Auth    handlers.AuthService
	Tasks   handlers.TaskService
	DB      handlers.Pinger
	Version string
}

// NewRouter регистрирует маршруты API. Task маршруты и /users/me закрыты AuthMiddleware.
func NewRouter(deps Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.Logger, deps.Auth)
	taskHandler := handlers.NewTaskHandler(deps.Logger, deps.Tasks)
	healthHandler := handlers.NewHealthHandler(deps.Logger, deps.DB, deps.Version)

	protected := middleware.AuthMiddleware(deps.Logger, deps.Tokens)
	guard := func(h http.HandlerFunc) http.Handler {
		return protected(h)
	}

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET "+healthPath, healthHandler.Health)
	mux.HandleFunc("POST "+apiPrefix+"/users/register", authHandler.Register)
	mux.HandleFunc("POST "+apiPrefix+"/users/login", authHandler.Login)
	// refresh проверяет свой токен сам: access token здесь не подходит
	mux.HandleFunc("POST "+apiPrefix+"/users/refresh", authHandler.Refresh)

	// Protected endpoints
	mux.Handle("GET "+apiPrefix+"/users/me", guard(authHandler.Me))

	// {user_id} это "me" или UUID текущего пользователя
	tasks := apiPrefix + "/users/{user_id}/tasks"
	mux.Handle("GET "+tasks, guard(taskHandler.List))
	mux.Handle("POST "+tasks, guard(taskHandler.Create))
	mux.Handle("GET "+tasks+"/{id}", guard(taskHandler.Get))
	mux.Handle("PUT "+tasks+"/{id}", guard(taskHandler.Update))
	mux.Handle("DELETE "+tasks+"/{id}", guard(taskHandler.Delete))
	mux.Handle("PATCH "+tasks+"/{id}/complete", guard(taskHandler.Complete))

	return mux
}

// Server HTTP сервер API
type Server struct {
	logger          *slog.Logger
	http            *http.Server
	limiter         *middleware.PathRateLimiter
	shutdownTimeout time.Duration
}

// New создает сервер: роутер, обернутый в recovery, логирование, CORS и rate limiting
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		logger:          deps.Logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	mws := []func(http.Handler) http.Handler{
		middleware.RecoveryMiddleware(deps.Logger),
		middleware.LoggingWithSkip(deps.Logger, []string{healthPath}),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	}

	if cfg.RateLimit.Enabled {
		authLimit := func(path string) middleware.PathRateLimit {
			return middleware.PathRateLimit{Path: apiPrefix + path, Rate: cfg.AuthPerMinute, Window: time.Minute}
		}
		s.limiter = middleware.NewPathRateLimiter([]middleware.PathRateLimit{
			authLimit("/users/login"),
			authLimit("/users/register"),
			authLimit("/users/refresh"),
		}, cfg.DefaultPerMinute, time.Minute, deps.Logger)
		mws = append(mws, s.limiter.Middleware)
	}

	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      middleware.Chain(NewRouter(deps), mws...),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(deps.Logger.Handler(), slog.LevelError),
	}

	return s
}

// Handler возвращает корневой handler со всеми middleware
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run слушает cfg.Address до отмены ctx, затем корректно завершает работу
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает ln до отмены ctx. Активные запросы получают shutdownTimeout на завершение.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.limiter != nil {
		defer s.limiter.Stop()
	}

	errC := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", slog.String("address", ln.Addr().String()))
		errC <- s.http.Serve(ln)
	}()

	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", slog.Duration("timeout", s.shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
