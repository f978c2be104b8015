package mem

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goserg/darts/internal/storage"
)

// Storage keeps snapshots in memory. Useful for tests and for a throwaway
// server.
type Storage struct {
	mu    sync.RWMutex
	games map[string][]byte
}

var _ storage.GameStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		games: make(map[string][]byte),
	}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.games[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[key] = append([]byte(nil), value...)
	return nil
}

func (s *Storage) ListKeys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.games))
	for key := range s.games {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Storage) GetMany(_ context.Context, keys []string) ([]storage.KeyValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]storage.KeyValue, 0, len(keys))
	for _, key := range keys {
		value, ok := s.games[key]
		if !ok {
			continue
		}
		values = append(values, storage.KeyValue{Key: key, Value: append([]byte(nil), value...)})
	}
	return values, nil
}

func (s *Storage) DeleteMany(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.games, key)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
