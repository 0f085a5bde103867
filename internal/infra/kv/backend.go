// Package kv holds the raw key-value backends behind the JSON storage adapter.
package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Backend stores opaque values under string keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

type prefixed struct {
	Backend
	prefix string
}

// WithPrefix namespaces every key so several deployments can share one backend.
func WithPrefix(b Backend, prefix string) Backend {
	if prefix == "" {
		return b
	}
	return &prefixed{Backend: b, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Backend.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.Backend.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.Backend.Remove(ctx, p.prefix+key)
}
