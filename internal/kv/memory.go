package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Backend. Its contents vanish with the process.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory creates an empty memory backend.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), data...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = append([]byte(nil), value...)

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)

	return nil
}

func (m *Memory) Close() error {
	return nil
}
