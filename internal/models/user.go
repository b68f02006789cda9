package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя в системе
type User struct {
	CreatedAt      time.Time  `json:"created_at"`           // время создания
	UpdatedAt      time.Time  `json:"updated_at"`           // время последнего обновления
	LastLogin      *time.Time `json:"last_login,omitempty"` // время последнего входа
	Email          string     `json:"email"`                // уникальный email (нормализованный)
	HashedPassword string     `json:"-"`                    // bcrypt хеш или legacy sha256:<hex>
	ID             uuid.UUID  `json:"id"`                   // UUID пользователя
}
