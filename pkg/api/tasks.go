package api

import "time"

// TaskResponse представляет задачу в ответах API
type TaskResponse struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
}

// TaskListResponse ответ со списком задач
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// CreateTaskRequest запрос на создание задачи
type CreateTaskRequest struct {
	DueDate     *time.Time `json:"due_date,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Completed   bool       `json:"completed,omitempty"`
}

// UpdateTaskRequest запрос на частичное обновление задачи.
// Отсутствующие поля не меняются.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// CompleteTaskRequest запрос на изменение статуса выполнения
type CompleteTaskRequest struct {
	Completed *bool `json:"completed"`
}
