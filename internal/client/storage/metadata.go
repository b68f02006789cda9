package storage

import "context"

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveServerURL remembers the server the session was created against
	SaveServerURL(ctx context.Context, url string) error

	// GetServerURL returns the remembered server URL
	// Returns "" if none was saved
	GetServerURL(ctx context.Context) (string, error)
}
