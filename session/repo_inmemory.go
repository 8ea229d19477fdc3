package session

import (
	"context"
	"sync"
)

var _ Repo = (*MemoryRepo)(nil)

// MemoryRepo keeps the session for the lifetime of the process.
type MemoryRepo struct {
	values map[string]string
	lock   sync.RWMutex
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{values: make(map[string]string)}
}

func (m *MemoryRepo) Get(_ context.Context, key string) (string, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryRepo) Set(_ context.Context, key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryRepo) Clear(_ context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values = make(map[string]string)
	return nil
}
