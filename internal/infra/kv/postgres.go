package kv

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvTable = "kv_entries"

// SQLSTATE 53100 disk_full, 54000 program_limit_exceeded
var quotaCodes = map[string]struct{}{"53100": {}, "54000": {}}

type PostgresBackend struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := p.sb.Select("value::text").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, err
	}

	var value string
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := p.sb.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, sq.Expr("?::jsonb", string(value)), sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if _, ok := quotaCodes[pgErr.Code]; ok {
				return errors.Join(ErrQuotaExceeded, err)
			}
		}
		return err
	}
	return nil
}

func (p *PostgresBackend) Remove(ctx context.Context, key string) error {
	query, args, err := p.sb.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, query, args...)
	return err
}

// Close is a no-op; the pool is owned by the db lifecycle hook.
func (p *PostgresBackend) Close() error {
	return nil
}
