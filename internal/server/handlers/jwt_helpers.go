package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/apperr"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// UserIDKey ключ для хранения user_id (uuid.UUID) в контексте
	UserIDKey contextKey = "user_id"
	// EmailKey ключ для хранения email из access token
	EmailKey contextKey = "email"
)

// MeAlias значение {user_id} в пути, означающее текущего пользователя
const MeAlias = "me"

// Ошибки извлечения bearer token
var (
	ErrMissingBearer   = fmt.Errorf("%w: authorization header is required", apperr.ErrAuthentication)
	ErrMalformedBearer = fmt.Errorf("%w: invalid authorization header format", apperr.ErrAuthentication)
	ErrNoIdentity      = fmt.Errorf("%w: request is not authenticated", apperr.ErrAuthentication)
	ErrForeignUser     = fmt.Errorf("%w: cannot access another user's resources", apperr.ErrAuthorization)
	ErrInvalidUserID   = fmt.Errorf("%w: invalid user id format", apperr.ErrValidation)
)

// BearerToken извлекает токен из заголовка "Authorization: Bearer <token>".
// Схема сравнивается без учета регистра, токен не может быть пустым.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingBearer
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMalformedBearer
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMalformedBearer
	}

	return token, nil
}

// WithIdentity кладет идентичность из access token в контекст.
// Используется только auth middleware.
func WithIdentity(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, EmailKey, email)
}

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// GetEmail извлекает email из контекста запроса
func GetEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// RequireSameUser сверяет {user_id} из пути с пользователем из токена.
// "me" и пустое значение означают текущего пользователя.
func RequireSameUser(ctx context.Context, pathUserID string) (uuid.UUID, error) {
	current, ok := GetUserID(ctx)
	if !ok {
		return uuid.Nil, ErrNoIdentity
	}

	if pathUserID == "" || pathUserID == MeAlias {
		return current, nil
	}

	requested, err := uuid.Parse(pathUserID)
	if err != nil {
		return uuid.Nil, ErrInvalidUserID
	}

	if requested != current {
		return uuid.Nil, ErrForeignUser
	}

	return current, nil
}
