package memory

import (
	"context"
	"sync"

	"med-reminder/internal/ports/kv"
)

type kvStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKV es el almacenamiento en memoria: se pierde al cerrar el proceso.
func NewKV() kv.Store {
	return &kvStore{data: make(map[string][]byte)}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
