package kv

import (
	"context"
	"sync"
)

type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[string][]byte
	used  int
	quota int
}

type MemoryOption func(*MemoryBackend)

// WithQuota caps the total stored bytes; writes beyond it fail with ErrQuotaExceeded.
func WithQuota(bytes int) MemoryOption {
	return func(m *MemoryBackend) {
		m.quota = bytes
	}
}

func NewMemoryBackend(opts ...MemoryOption) *MemoryBackend {
	m := &MemoryBackend{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used - len(m.data[key]) + len(value)
	if m.quota > 0 && next > m.quota {
		return ErrQuotaExceeded
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	m.used = next
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.used -= len(m.data[key])
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
