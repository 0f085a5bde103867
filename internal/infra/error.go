package infra

import (
	"errors"
	"log/slog"

	"rsv-catalog/internal/pkg/errs"
)

type StorageErrorKind string

const (
	KindBackendFailure StorageErrorKind = "BACKEND_FAILURE"
	KindQuotaExceeded  StorageErrorKind = "QUOTA_EXCEEDED"
	KindEncode         StorageErrorKind = "ENCODE"
)

// StorageError is a failed write against one key. It always matches
// errs.ErrStorageWrite so handlers can answer 503 without knowing the backend.
type StorageError struct {
	Kind StorageErrorKind
	Op   string
	Key  string
	err  error
}

func (e StorageError) Error() string {
	msg := string(e.Kind) + ": " + e.Op + " " + e.Key
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e StorageError) Unwrap() error {
	return e.err
}

// WrapStorageErr logs the failure once and returns it as a StorageError.
func WrapStorageErr(logger *slog.Logger, kind StorageErrorKind, op, key string, err error) error {
	attrs := []any{"kind", string(kind), "op", op, "key", key}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	logger.Error("storage write failed", attrs...)

	return StorageError{
		Kind: kind,
		Op:   op,
		Key:  key,
		err:  errs.Mark(errs.Wrap(err, op+" "+key), errs.ErrStorageWrite),
	}
}

func IsKind(err error, kind StorageErrorKind) bool {
	var e StorageError
	return errors.As(err, &e) && e.Kind == kind
}
