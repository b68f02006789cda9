package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/apperr"
	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/internal/server/storage"
	"github.com/iudanet/todokeeper/internal/validation"
)

// ErrTaskNotFound возвращается и для чужой, и для несуществующей задачи
var ErrTaskNotFound = fmt.Errorf("%w: task not found", apperr.ErrNotFound)

// NewTask входные данные для создания задачи
type NewTask struct {
	DueDate     *time.Time
	Title       string
	Description string
	Category    string
	Completed   bool
}

// TaskService управляет задачами одного владельца за вызов
type TaskService struct {
	logger *slog.Logger
	tasks  storage.TaskStorage
	now    func() time.Time
}

// NewTaskService создает сервис задач
func NewTaskService(logger *slog.Logger, tasks storage.TaskStorage) *TaskService {
	return &TaskService{
		logger: logger,
		tasks:  tasks,
		now:    time.Now,
	}
}

// List возвращает задачи пользователя с учетом фильтра
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create создает задачу для пользователя
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, in NewTask) (*models.Task, error) {
	now := s.now().UTC()
	task := &models.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validation.NormalizeTask(task); err != nil {
		return nil, err
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.InfoContext(ctx, "task created",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()))

	return task, nil
}

// Get возвращает задачу пользователя
func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, mapTaskError(err)
	}
	return task, nil
}

// Update применяет частичное обновление. Хотя бы одно поле обязательно.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	if err := validation.NormalizePatch(&patch); err != nil {
		return nil, err
	}

	return s.modify(ctx, userID, taskID, patch)
}

// SetCompleted меняет только статус выполнения
func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*models.Task, error) {
	return s.modify(ctx, userID, taskID, models.TaskPatch{Completed: &completed})
}

// Delete удаляет задачу пользователя
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.tasks.DeleteTask(ctx, userID, taskID); err != nil {
		return mapTaskError(err)
	}

	s.logger.InfoContext(ctx, "task deleted",
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()))

	return nil
}

func (s *TaskService) modify(ctx context.Context, userID, taskID uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, mapTaskError(err)
	}

	patch.Apply(task)
	task.UpdatedAt = s.now().UTC()

	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, mapTaskError(err)
	}

	return task, nil
}

func mapTaskError(err error) error {
	if errors.Is(err, storage.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("task storage: %w", err)
}
