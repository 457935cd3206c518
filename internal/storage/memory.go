package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps sets in process memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]string)}
}

func (m *MemoryStore) Strings(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.sets[key]))
	copy(out, m.sets[key])
	return out, nil
}

func (m *MemoryStore) SetStrings(ctx context.Context, key string, values []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[key] = dedupe(values)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
