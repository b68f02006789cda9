package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/todokeeper/internal/apperr"
	"github.com/iudanet/todokeeper/internal/models"
)

const (
	// MaxTitleLen максимальная длина заголовка задачи (в символах)
	MaxTitleLen = 255
	// MaxCategoryLen максимальная длина категории (в символах)
	MaxCategoryLen = 64
)

// NormalizeTitle обрезает пробелы вокруг заголовка
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// ValidateTitle проверяет нормализованный заголовок задачи
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: task title cannot be empty", apperr.ErrValidation)
	}

	if utf8.RuneCountInString(title) > MaxTitleLen {
		return fmt.Errorf("%w: task title must not exceed %d characters", apperr.ErrValidation, MaxTitleLen)
	}

	return nil
}

// ValidateCategory проверяет категорию задачи. Пустая категория допустима.
func ValidateCategory(category string) error {
	if utf8.RuneCountInString(category) > MaxCategoryLen {
		return fmt.Errorf("%w: category must not exceed %d characters", apperr.ErrValidation, MaxCategoryLen)
	}

	return nil
}

// NormalizeTask приводит поля новой задачи к каноническому виду и проверяет их
func NormalizeTask(task *models.Task) error {
	task.Title = NormalizeTitle(task.Title)
	task.Category = strings.TrimSpace(task.Category)

	if err := ValidateTitle(task.Title); err != nil {
		return err
	}

	return ValidateCategory(task.Category)
}

// NormalizePatch проверяет частичное обновление задачи.
// Хотя бы одно поле должно быть задано.
func NormalizePatch(patch *models.TaskPatch) error {
	if patch.Empty() {
		return fmt.Errorf("%w: at least one field (title, description, completed, category, or due_date) must be provided for update",
			apperr.ErrValidation)
	}

	if patch.Title != nil {
		title := NormalizeTitle(*patch.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		patch.Title = &title
	}

	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if err := ValidateCategory(category); err != nil {
			return err
		}
		patch.Category = &category
	}

	return nil
}
