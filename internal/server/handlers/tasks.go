package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/apperr"
	"github.com/iudanet/todokeeper/internal/models"
	"github.com/iudanet/todokeeper/internal/server/service"
	"github.com/iudanet/todokeeper/pkg/api"
)

// TaskService определяет операции над задачами, нужные handler'у
type TaskService interface {
	List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)
	Create(ctx context.Context, userID uuid.UUID, in service.NewTask) (*models.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, patch models.TaskPatch) (*models.Task, error)
	SetCompleted(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

// ErrInvalidTaskID возвращается для {id}, не являющегося UUID
var ErrInvalidTaskID = fmt.Errorf("%w: invalid task id format", apperr.ErrValidation)

// TaskHandler обрабатывает CRUD запросы задач.
// Маршруты вида /users/{user_id}/tasks, где {user_id} это "me" или свой UUID.
type TaskHandler struct {
	logger *slog.Logger
	tasks  TaskService
}

// NewTaskHandler создает handler задач
func NewTaskHandler(logger *slog.Logger, tasks TaskService) *TaskHandler {
	return &TaskHandler{
		logger: logger,
		tasks:  tasks,
	}
}

// List обрабатывает GET .../tasks?completed=true|false&category=<s>
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := RequireSameUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	tasks, err := h.tasks.List(r.Context(), userID, filter)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	resp := api.TaskListResponse{Tasks: make([]api.TaskResponse, 0, len(tasks))}
	for _, task := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(task))
	}

	h.logger.DebugContext(r.Context(), "tasks listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)))

	SendJSON(w, h.logger, resp, http.StatusOK)
}

// Create обрабатывает POST .../tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := RequireSameUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req api.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), userID, service.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	})
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, toTaskResponse(task), http.StatusCreated)
}

// Get обрабатывает GET .../tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, err := h.resolve(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	task, err := h.tasks.Get(r.Context(), userID, taskID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, toTaskResponse(task), http.StatusOK)
}

// Update обрабатывает PUT .../tasks/{id} (частичное обновление)
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, err := h.resolve(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req api.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), userID, taskID, models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	})
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, toTaskResponse(task), http.StatusOK)
}

// Complete обрабатывает PATCH .../tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, err := h.resolve(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req api.CompleteTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if req.Completed == nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: completed is required", apperr.ErrValidation))
		return
	}

	task, err := h.tasks.SetCompleted(r.Context(), userID, taskID, *req.Completed)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, toTaskResponse(task), http.StatusOK)
}

// Delete обрабатывает DELETE .../tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, err := h.resolve(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), userID, taskID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	SendJSON(w, h.logger, api.MessageResponse{Message: "Task deleted successfully"}, http.StatusOK)
}

// resolve проверяет владельца из пути и разбирает {id}
func (h *TaskHandler) resolve(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := RequireSameUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidTaskID
	}

	return userID, taskID, nil
}

func parseTaskFilter(r *http.Request) (models.TaskFilter, error) {
	var filter models.TaskFilter
	q := r.URL.Query()

	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: completed must be true or false", apperr.ErrValidation)
		}
		filter.Completed = &completed
	}

	if q.Has("category") {
		category := q.Get("category")
		filter.Category = &category
	}

	return filter, nil
}

func toTaskResponse(task *models.Task) api.TaskResponse {
	return api.TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
