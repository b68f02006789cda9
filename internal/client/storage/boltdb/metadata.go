package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	keyServerURL = "server_url"
)

// SaveServerURL remembers the server URL of the current session
func (s *Storage) SaveServerURL(ctx context.Context, url string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyServerURL), []byte(url)); err != nil {
			return fmt.Errorf("failed to save server url: %w", err)
		}

		return nil
	})
}

// GetServerURL returns the remembered server URL or "" if none was saved
func (s *Storage) GetServerURL(ctx context.Context) (string, error) {
	var url string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		url = string(bucket.Get([]byte(keyServerURL)))
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get server url: %w", err)
	}

	return url, nil
}
