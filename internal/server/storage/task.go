package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/models"
)

// TaskStorage defines interface for task persistence.
// Every method is scoped to the owner: a task of another user is reported as not found.
type TaskStorage interface {
	// CreateTask saves a new task
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task owned by userID
	// Returns ErrTaskNotFound if there is no such task for this user
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)

	// ListTasks returns tasks owned by userID, newest first
	ListTasks(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)

	// UpdateTask overwrites mutable fields of an existing task
	// Returns ErrTaskNotFound if there is no such task for this user
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes a task owned by userID
	// Returns ErrTaskNotFound if there is no such task for this user
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

// Pinger is implemented by storages that can report database availability
type Pinger interface {
	Ping(ctx context.Context) error
}
