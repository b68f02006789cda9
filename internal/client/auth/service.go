// Package auth управляет клиентской сессией: регистрация, вход, выход
// и хранение токенов между запусками.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/client/storage"
	"github.com/iudanet/todokeeper/internal/validation"
	pkgapi "github.com/iudanet/todokeeper/pkg/api"
)

// Service предоставляет функции авторизации и реализует api.Session
type Service struct {
	apiClient *api.Client
	store     storage.AuthStorage
	now       func() time.Time
}

var _ api.Session = (*Service)(nil)

// NewService создает сервис авторизации и подключает его к apiClient как источник токенов
func NewService(apiClient *api.Client, store storage.AuthStorage) *Service {
	s := &Service{
		apiClient: apiClient,
		store:     store,
		now:       time.Now,
	}
	apiClient.SetSession(s)
	return s
}

// Register регистрирует нового пользователя. Сессия не создается.
func (s *Service) Register(ctx context.Context, email, password string) (*pkgapi.UserResponse, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return user, nil
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, email, password string) (*storage.AuthData, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	tokens, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.AuthData{
		Email:        email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    s.now().Unix() + tokens.ExpiresIn,
	}
	if err := s.store.SaveAuth(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	// id пользователя не входит в ответ login, берем из профиля
	me, err := s.apiClient.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	// Me мог обновить токены, перечитываем сессию
	session, err = s.store.GetAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload auth data: %w", err)
	}
	session.UserID = me.ID
	if err := s.store.SaveAuth(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	return session, nil
}

// Logout удаляет локальную сессию. Токены stateless: сервер уведомлять не нужно.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.DeleteAuth(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return api.ErrNoSession
		}
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	return nil
}

// Current возвращает сохраненную сессию или api.ErrNoSession
func (s *Service) Current(ctx context.Context) (*storage.AuthData, error) {
	session, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, api.ErrNoSession
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return session, nil
}

// IsAuthenticated checks if a session with a live access token exists
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.store.IsAuthenticated(ctx)
}

// Tokens возвращает токены текущей сессии
func (s *Service) Tokens(ctx context.Context) (string, string, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return "", "", err
	}
	return session.AccessToken, session.RefreshToken, nil
}

// Update сохраняет пару, выданную после refresh
func (s *Service) Update(ctx context.Context, tokens *pkgapi.TokenResponse) error {
	session, err := s.Current(ctx)
	if err != nil {
		return err
	}

	session.AccessToken = tokens.AccessToken
	session.RefreshToken = tokens.RefreshToken
	session.ExpiresAt = s.now().Unix() + tokens.ExpiresIn

	return s.store.SaveAuth(ctx, session)
}
