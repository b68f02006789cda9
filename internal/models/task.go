package models

import (
	"time"

	"github.com/google/uuid"
)

// Task представляет задачу пользователя
type Task struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Completed   bool       `json:"completed"`
}

// TaskFilter ограничивает выборку задач. Nil поля не фильтруют.
type TaskFilter struct {
	Completed *bool
	Category  *string
}

// TaskPatch описывает частичное обновление задачи. Nil поля не меняются.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *string
	Completed   *bool
	DueDate     *time.Time
}

// Empty сообщает, что patch ничего не меняет
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Completed == nil && p.DueDate == nil
}

// Apply применяет patch к задаче
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
}
