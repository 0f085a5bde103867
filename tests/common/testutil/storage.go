//go:build unit || e2e

package testutil

import (
	"io"
	"log/slog"
	"testing"

	"rsv-catalog/internal/infra/kv"
	"rsv-catalog/internal/infra/storage"
)

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMemoryPersistence returns a JSON adapter over a fresh in-memory backend.
func NewMemoryPersistence(t *testing.T, opts ...kv.MemoryOption) *storage.Adapter {
	t.Helper()
	backend := kv.NewMemoryBackend(opts...)
	t.Cleanup(func() { _ = backend.Close() })
	return storage.NewAdapter(backend, DiscardLogger(), nil)
}
