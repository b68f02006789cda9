package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if email is already taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by normalized email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// UpdateLastLogin updates the last login timestamp
	// Returns ErrUserNotFound if user doesn't exist
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, lastLogin time.Time) error

	// DeleteUser deletes user by ID together with its tasks
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
