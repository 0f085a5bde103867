package shared

import "context"

// Persistence is the JSON key-value port every store is built on.
// Load never fails: a missing or corrupt value reports false.
// Save and Remove return errors marked with errs.ErrStorageWrite.
type Persistence interface {
	Load(ctx context.Context, key string, dst any) bool
	Save(ctx context.Context, key string, v any) error
	Remove(ctx context.Context, key string) error
}

// LoadList loads a JSON array, always returning a non-nil slice.
func LoadList[T any](ctx context.Context, p Persistence, key string) []T {
	var out []T
	if !p.Load(ctx, key, &out) || out == nil {
		return []T{}
	}
	return out
}
