package service

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/internal/server/storage"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// mockUserStorage is an in-memory implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[uuid.UUID]*models.User
	createError  error
	getError     error
	loginError   error
	lastLoginSet int
	mu           sync.Mutex
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserStorage) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *mockUserStorage) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loginError != nil {
		return m.loginError
	}
	u, ok := m.users[id]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.LastLogin = &at
	m.lastLoginSet++
	return nil
}

func (m *mockUserStorage) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// mockTaskStorage is an in-memory implementation of TaskStorage for testing
type mockTaskStorage struct {
	tasks     map[uuid.UUID]*models.Task
	failError error
	mu        sync.Mutex
}

func newMockTaskStorage() *mockTaskStorage {
	return &mockTaskStorage{tasks: make(map[uuid.UUID]*models.Task)}
}

func (m *mockTaskStorage) CreateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failError != nil {
		return m.failError
	}
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *mockTaskStorage) GetTask(_ context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failError != nil {
		return nil, m.failError
	}
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, storage.ErrTaskNotFound
	}
	found := *task
	return &found, nil
}

func (m *mockTaskStorage) ListTasks(_ context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failError != nil {
		return nil, m.failError
	}
	result := make([]*models.Task, 0)
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		if filter.Category != nil && task.Category != *filter.Category {
			continue
		}
		found := *task
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockTaskStorage) UpdateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failError != nil {
		return m.failError
	}
	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return storage.ErrTaskNotFound
	}
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *mockTaskStorage) DeleteTask(_ context.Context, userID, taskID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failError != nil {
		return m.failError
	}
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return storage.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}
