//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ResetDB empties the key-value table between subtests.
func ResetDB(db DBLike) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := db.Exec(ctx, "TRUNCATE TABLE kv_entries")
	return err
}

// Keys lists the stored keys, sorted.
func Keys(t *testing.T, db DBLike) []string {
	t.Helper()

	query, args, err := psql.Select("key").From("kv_entries").OrderBy("key").ToSql()
	require.NoError(t, err)

	rows, err := db.Query(context.Background(), query, args...)
	require.NoError(t, err)
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	require.NoError(t, err)
	return keys
}

// LoadJSON decodes the raw value stored under key, reporting whether it exists.
func LoadJSON(t *testing.T, db DBLike, key string, dst any) bool {
	t.Helper()

	query, args, err := psql.Select("value").From("kv_entries").Where(sq.Eq{"key": key}).ToSql()
	require.NoError(t, err)

	var raw string
	err = db.QueryRow(context.Background(), query, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), dst))
	return true
}

// StoreRaw writes a JSON document under key, for seeding records the app did not write.
func StoreRaw(t *testing.T, db DBLike, key string, value []byte) {
	t.Helper()

	query, args, err := psql.Insert("kv_entries").
		Columns("key", "value", "updated_at").
		Values(key, sq.Expr("?::jsonb", string(value)), time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), query, args...)
	require.NoError(t, err)
}
