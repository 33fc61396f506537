// Package registry persists named model definitions in SQLite so a server can
// reload its active model across restarts.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a named model does not exist.
var ErrNotFound = errors.New("registry: model not found")

// Model is one stored definition.
type Model struct {
	Name       string
	Definition string
	RootType   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists model definitions in SQLite.
type Store struct {
	sqlDB *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS models (
    name          TEXT PRIMARY KEY,
    definition    TEXT NOT NULL,
    root_type     TEXT NOT NULL DEFAULT '',
    created_at_ms INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
);
`

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite model store and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("registry: storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("registry: open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("registry: ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("registry: apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts one model definition under name.
func (s *Store) Save(ctx context.Context, name, definition, rootType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("registry: storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("registry: model name is required")
	}
	if strings.TrimSpace(definition) == "" {
		return fmt.Errorf("registry: definition is required")
	}

	now := toMillis(time.Now())
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO models (name, definition, root_type, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    definition    = excluded.definition,
    root_type     = excluded.root_type,
    updated_at_ms = excluded.updated_at_ms`,
		name, definition, rootType, now, now)
	if err != nil {
		return fmt.Errorf("registry: save model: %w", err)
	}
	return nil
}

// Get returns one stored model by name.
func (s *Store) Get(ctx context.Context, name string) (Model, error) {
	if err := ctx.Err(); err != nil {
		return Model{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Model{}, fmt.Errorf("registry: storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT name, definition, root_type, created_at_ms, updated_at_ms
FROM models WHERE name = ?`, strings.TrimSpace(name))

	var (
		m         Model
		createdMs int64
		updatedMs int64
	)
	if err := row.Scan(&m.Name, &m.Definition, &m.RootType, &createdMs, &updatedMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Model{}, ErrNotFound
		}
		return Model{}, fmt.Errorf("registry: get model: %w", err)
	}
	m.CreatedAt = fromMillis(createdMs)
	m.UpdatedAt = fromMillis(updatedMs)
	return m, nil
}

// List returns every stored model ordered by name, definitions included.
func (s *Store) List(ctx context.Context) ([]Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("registry: storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT name, definition, root_type, created_at_ms, updated_at_ms
FROM models ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("registry: list models: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var models []Model
	for rows.Next() {
		var (
			m         Model
			createdMs int64
			updatedMs int64
		)
		if err := rows.Scan(&m.Name, &m.Definition, &m.RootType, &createdMs, &updatedMs); err != nil {
			return nil, fmt.Errorf("registry: scan model: %w", err)
		}
		m.CreatedAt = fromMillis(createdMs)
		m.UpdatedAt = fromMillis(updatedMs)
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry: list models: %w", err)
	}
	return models, nil
}

// Delete removes one stored model. Deleting a missing model is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("registry: storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM models WHERE name = ?`, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("registry: delete model: %w", err)
	}
	return nil
}
