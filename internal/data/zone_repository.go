package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ZoneRepository stores zone documents, one row per zone key. The whole
// document is a single JSON blob; there is no per-entity storage and no
// versioning, so a write is a plain last-writer-wins upsert.
type ZoneRepository struct {
	db    *sqlx.DB
	table string
}

// NewZoneRepository creates a ZoneRepository over the given table.
func NewZoneRepository(db *sqlx.DB, table string) *ZoneRepository {
	if table == "" {
		table = "dashboard_data"
	}
	return &ZoneRepository{db: db, table: table}
}

// Get returns the raw document stored under key, or nil when no row exists.
func (r *ZoneRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var raw []byte
	query := fmt.Sprintf("SELECT data FROM %s WHERE id = ?", r.table)
	if err := r.db.GetContext(ctx, &raw, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // absence of data is not an error
		}
		return nil, fmt.Errorf("failed to get zone %q: %w", key, err)
	}
	return json.RawMessage(raw), nil
}

// Upsert writes the raw document under key, replacing any previous row.
// REPLACE INTO is understood by both the MySQL driver used in production and
// the SQLite driver used by the integration tests.
func (r *ZoneRepository) Upsert(ctx context.Context, key string, doc json.RawMessage) error {
	query := fmt.Sprintf("REPLACE INTO %s (id, data) VALUES (?, ?)", r.table)
	if _, err := r.db.ExecContext(ctx, query, key, []byte(doc)); err != nil {
		return fmt.Errorf("failed to upsert zone %q: %w", key, err)
	}
	return nil
}
