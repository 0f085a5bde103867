//go:build unit

package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rsv-catalog/internal/infra/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]kv.Backend {
	t.Helper()
	fileBackend, err := kv.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return map[string]kv.Backend{
		"memory": kv.NewMemoryBackend(),
		"file":   fileBackend,
	}
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(ctx, "rsv360_budgets")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, b.Set(ctx, "rsv360_budgets", []byte(`[1]`)))
			require.NoError(t, b.Set(ctx, "rsv360_budgets", []byte(`[1,2]`)))

			got, err := b.Get(ctx, "rsv360_budgets")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, b.Remove(ctx, "rsv360_budgets"))
			_, err = b.Get(ctx, "rsv360_budgets")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			// removing a missing key is not an error
			assert.NoError(t, b.Remove(ctx, "rsv360_budgets"))
			assert.NoError(t, b.Close())
		})
	}
}

func TestMemoryBackendQuota(t *testing.T) {
	ctx := context.Background()
	b := kv.NewMemoryBackend(kv.WithQuota(10))

	require.NoError(t, b.Set(ctx, "a", []byte("12345")))
	require.NoError(t, b.Set(ctx, "b", []byte("12345")))
	assert.ErrorIs(t, b.Set(ctx, "c", []byte("1")), kv.ErrQuotaExceeded)

	// overwriting an existing key only counts the delta
	require.NoError(t, b.Set(ctx, "a", []byte("123")))
	require.NoError(t, b.Set(ctx, "c", []byte("12")))

	require.NoError(t, b.Remove(ctx, "b"))
	assert.NoError(t, b.Set(ctx, "d", []byte("12345")))
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	ctx := context.Background()
	b := kv.NewMemoryBackend()

	in := []byte("abc")
	require.NoError(t, b.Set(ctx, "k", in))
	in[0] = 'x'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := kv.NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Set(ctx, "rsv360/templates", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rsv360_templates.json", entries[0].Name())
	assert.FileExists(t, filepath.Join(dir, "rsv360_templates.json"))
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	inner := kv.NewMemoryBackend()
	b := kv.WithPrefix(inner, "tenant-a:")

	require.NoError(t, b.Set(ctx, "rsv360_users", []byte(`[]`)))

	_, err := inner.Get(ctx, "rsv360_users")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	got, err := inner.Get(ctx, "tenant-a:rsv360_users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	assert.Same(t, inner, kv.WithPrefix(inner, ""))
}
