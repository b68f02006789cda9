package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/iudanet/todokeeper/internal/apperr"
)

const (
	// MaxEmailLen максимальная длина email
	MaxEmailLen = 255
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 1
)

// NormalizeEmail обрезает пробелы и приводит email к нижнему регистру.
// Хранение и поиск всегда идут по нормализованному значению.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет, что email похож на адрес вида local@domain.
// Ожидает уже нормализованное значение.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", apperr.ErrValidation)
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("%w: email must not exceed %d characters", apperr.ErrValidation, MaxEmailLen)
	}

	// ParseAddress принимает "Name <a@b>", нам нужен голый адрес
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", apperr.ErrValidation)
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю.
// Верхней границы нет: длинные пароли обрезаются при хешировании.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password cannot be empty", apperr.ErrValidation)
	}

	return nil
}
