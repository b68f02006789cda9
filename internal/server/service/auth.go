// Package service содержит бизнес-логику сервера: регистрацию, вход,
// обновление токенов и работу с задачами. HTTP-слой только декодирует
// запросы и переводит ошибки в статусы.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/apperr"
	"github.com/iudanet/todokeeper/internal/crypto"
	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/internal/server/jwt"
	"github.com/iudanet/todokeeper/internal/server/storage"
	"github.com/iudanet/todokeeper/internal/validation"
)

// Ошибки аутентификации и регистрации
var (
	// ErrInvalidCredentials не различает "нет такого email" и "неверный пароль"
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect email or password", apperr.ErrAuthentication)
	// ErrEmailTaken возвращается при повторной регистрации
	ErrEmailTaken = fmt.Errorf("%w: email already registered", apperr.ErrDuplicate)
	// ErrUserNotFound возвращается, когда пользователь из токена уже удален
	ErrUserNotFound = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
)

// TokenPair пара токенов, выдаваемая при входе и обновлении
type TokenPair struct {
	Access    jwt.Token
	Refresh   jwt.Token
	ExpiresIn int64 // время жизни access token в секундах
}

// AuthService регистрирует пользователей и выдает токены
type AuthService struct {
	logger     *slog.Logger
	users      storage.UserStorage
	tokens     *jwt.Service
	now        func() time.Time
	bcryptCost int
}

// NewAuthService создает сервис авторизации
func NewAuthService(logger *slog.Logger, users storage.UserStorage, tokens *jwt.Service, bcryptCost int) *AuthService {
	return &AuthService{
		logger:     logger,
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register создает пользователя с bcrypt хешем пароля
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPasswordWithCost(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()))

	return user, nil
}

// Login проверяет пароль и выдает пару токенов
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = validation.NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !crypto.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	// Не критичная ошибка, логируем но не прерываем
	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "failed to update last login",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err))
	}

	return pair, nil
}

// Refresh выдает новую пару токенов по действующему refresh token.
// Access token сюда не подходит.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.RequireRefreshSubject(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Токен валиден, но пользователя больше нет
			return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issue(user)
}

// Profile возвращает пользователя по id из токена
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *AuthService) issue(user *models.User) (*TokenPair, error) {
	subject := user.ID.String()

	access, err := s.tokens.MintAccess(subject, user.Email, 0)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.MintRefresh(subject, 0)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		Access:    access,
		Refresh:   refresh,
		ExpiresIn: int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
