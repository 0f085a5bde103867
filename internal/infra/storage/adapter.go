// Package storage encodes values as JSON on top of a kv.Backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"time"

	"rsv-catalog/internal/infra"
	"rsv-catalog/internal/infra/kv"
	"rsv-catalog/internal/pkg/metrics"
)

const (
	resultOK      = "ok"
	resultMiss    = "miss"
	resultCorrupt = "corrupt"
	resultError   = "error"
)

type Adapter struct {
	backend kv.Backend
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewAdapter(backend kv.Backend, logger *slog.Logger, m *metrics.Metrics) *Adapter {
	return &Adapter{backend: backend, logger: logger, metrics: m}
}

// Load decodes the value under key into dst. It reports false for a missing,
// unreadable or corrupt value and leaves dst zeroed in that case.
func (a *Adapter) Load(ctx context.Context, key string, dst any) bool {
	start := time.Now()

	raw, err := a.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			a.metrics.ObserveStorage("get", key, resultMiss, time.Since(start))
			return false
		}
		a.logger.Warn("storage read failed, treating as empty", "key", key, "error", err)
		a.metrics.ObserveStorage("get", key, resultError, time.Since(start))
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		a.logger.Warn("stored value is corrupt, treating as empty", "key", key, "error", err)
		resetValue(dst)
		a.metrics.ObserveStorage("get", key, resultCorrupt, time.Since(start))
		return false
	}

	a.metrics.ObserveStorage("get", key, resultOK, time.Since(start))
	return true
}

// Save encodes v and writes it under key. Failures are logged once and
// returned as an infra.StorageError; nothing is retried.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	start := time.Now()

	raw, err := json.Marshal(v)
	if err != nil {
		a.metrics.ObserveStorage("set", key, resultError, time.Since(start))
		return infra.WrapStorageErr(a.logger, infra.KindEncode, "encode", key, err)
	}

	if err := a.backend.Set(ctx, key, raw); err != nil {
		kind := infra.KindBackendFailure
		if errors.Is(err, kv.ErrQuotaExceeded) {
			kind = infra.KindQuotaExceeded
		}
		a.metrics.ObserveStorage("set", key, resultError, time.Since(start))
		return infra.WrapStorageErr(a.logger, kind, "set", key, err)
	}

	a.metrics.ObserveStorage("set", key, resultOK, time.Since(start))
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	start := time.Now()

	if err := a.backend.Remove(ctx, key); err != nil {
		a.metrics.ObserveStorage("remove", key, resultError, time.Since(start))
		return infra.WrapStorageErr(a.logger, infra.KindBackendFailure, "remove", key, err)
	}

	a.metrics.ObserveStorage("remove", key, resultOK, time.Since(start))
	return nil
}

func resetValue(dst any) {
	v := reflect.ValueOf(dst)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
}
