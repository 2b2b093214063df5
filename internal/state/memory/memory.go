// Package memory is an in-process Store for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/swgrab/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	records map[string]domain.ObservedState
}

func New() *Store {
	return &Store{records: make(map[string]domain.ObservedState)}
}

func (m *Store) Load(ctx context.Context, target string) (*domain.ObservedState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obs, ok := m.records[target]
	if !ok {
		return nil, nil
	}
	cp := obs
	return &cp, nil
}

func (m *Store) Save(ctx context.Context, target string, obs domain.ObservedState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[target] = obs
	return nil
}
