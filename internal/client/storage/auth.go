package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing the client session
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing the previous session
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	// Returns ErrAuthNotFound if there is no session
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a session exists whose access token is not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the saved session.
// Tokens are bearer credentials: the database file is created with 0600.
type AuthData struct {
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds, access token expiry
}

// Expired сообщает, истек ли access token к моменту now
func (a *AuthData) Expired(now time.Time) bool {
	return !now.Before(time.Unix(a.ExpiresAt, 0))
}
