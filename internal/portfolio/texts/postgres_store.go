package texts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps overrides in a single JSONB row named StorageKey.
type PostgresStore struct {
	db   *pgxpool.Pool
	name string
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db, name: StorageKey}
}

// EnsureSchema creates the site_texts table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS site_texts (
    name       TEXT PRIMARY KEY,
    data       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("create site_texts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]string, error) {
	const q = `SELECT data FROM site_texts WHERE name = $1;`

	var raw []byte
	err := s.db.QueryRow(ctx, q, s.name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select site_texts: %w", err)
	}
	var texts map[string]string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return texts, nil
}

func (s *PostgresStore) Save(ctx context.Context, texts map[string]string) error {
	raw, err := json.Marshal(texts)
	if err != nil {
		return fmt.Errorf("marshal site texts: %w", err)
	}
	const q = `
INSERT INTO site_texts (name, data, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW();
`
	if _, err := s.db.Exec(ctx, q, s.name, raw); err != nil {
		return fmt.Errorf("upsert site_texts: %w", err)
	}
	return nil
}
