package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/internal/server/service"
	"github.com/iudanet/todokeeper/pkg/api"
)

// AuthService определяет операции авторизации, нужные handler'у
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	auth   AuthService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

// Register обрабатывает POST /api/v1/users/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	user, err := h.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, toUserResponse(user), http.StatusCreated)
}

// Login обрабатывает POST /api/v1/users/login
// Аутентификация пользователя
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	pair, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully")

	SendJSON(w, h.logger, toTokenResponse(pair), http.StatusOK)
}

// Refresh обрабатывает POST /api/v1/users/refresh
// Обновление пары токенов, refresh token передается как bearer token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refreshToken, err := BearerToken(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	pair, err := h.auth.Refresh(ctx, refreshToken)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully")

	SendJSON(w, h.logger, toTokenResponse(pair), http.StatusOK)
}

// Me обрабатывает GET /api/v1/users/me
// Профиль текущего пользователя
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		WriteError(w, r, h.logger, ErrNoIdentity)
		return
	}

	user, err := h.auth.Profile(ctx, userID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, toUserResponse(user), http.StatusOK)
}

func toUserResponse(user *models.User) api.UserResponse {
	return api.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		LastLogin: user.LastLogin,
	}
}

func toTokenResponse(pair *service.TokenPair) api.TokenResponse {
	return api.TokenResponse{
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
		TokenType:    api.TokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
	}
}
