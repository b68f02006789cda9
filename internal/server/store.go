package server

import (
	"context"
	"fmt"

	"github.com/iudanet/todokeeper/internal/config"
	"github.com/iudanet/todokeeper/internal/server/storage"
	"github.com/iudanet/todokeeper/internal/server/storage/postgres"
	"github.com/iudanet/todokeeper/internal/server/storage/sqlite"
)

// Store объединяет все хранилища поверх одной базы
type Store interface {
	storage.UserStorage
	storage.TaskStorage
	storage.Pinger
	Close() error
}

// OpenStore открывает SQLite или Postgres по DSN и применяет миграции
func OpenStore(ctx context.Context, driver config.DBDriver, dsn string) (Store, error) {
	switch driver {
	case config.DriverPostgres:
		s, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
