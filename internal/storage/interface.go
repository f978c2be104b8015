package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type KeyValue struct {
	Key   string
	Value []byte
}

// GameStorage keeps serialized game snapshots under their game ID.
type GameStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	// GetMany skips keys that do not exist.
	GetMany(ctx context.Context, keys []string) ([]KeyValue, error)
	DeleteMany(ctx context.Context, keys []string) error
	Close() error
}
