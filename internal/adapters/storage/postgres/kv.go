package postgres

import (
	"context"
	"database/sql"
	"errors"

	"med-reminder/internal/ports/kv"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KVStore guarda el estado del dispositivo en Postgres (instalaciones compartidas).
type KVStore struct {
	db *sql.DB
}

var _ kv.Store = (*KVStore)(nil)

func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Migrate crea la tabla si no existe.
func (r *KVStore) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, kvSchema)
	return err
}

func (r *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value)
	return err
}

func (r *KVStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key)
	return err
}
