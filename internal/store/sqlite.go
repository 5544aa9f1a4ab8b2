package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/scroll-memory/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex // guards entropy
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		origin     TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		id         TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (origin, key)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_updated ON entries(updated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Put(ctx context.Context, p PutParams) (*model.Entry, error) {
	if p.Key == "" {
		return nil, errors.New("key is required")
	}
	now := time.Now().UTC()
	id := s.newID(now)

	// Last writer wins; the revision id changes on every write.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (origin, key, value, id, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(origin, key) DO UPDATE SET
		   value = excluded.value, id = excluded.id, updated_at = excluded.updated_at`,
		p.Origin, p.Key, p.Value, id, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}

	return &model.Entry{
		ID:        id,
		Origin:    p.Origin,
		Key:       p.Key,
		Value:     p.Value,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) (*model.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, origin, key, value, updated_at FROM entries
		 WHERE origin = ? AND key = ?`, p.Origin, p.Key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, p.Origin, p.Key)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Entry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 100
	}

	var where []string
	var args []interface{}
	if p.Origin != "" {
		where = append(where, "origin = ?")
		args = append(args, p.Origin)
	}
	if p.Prefix != "" {
		// substr avoids LIKE wildcard handling of '_' in view-mode keys
		where = append(where, "substr(key, 1, ?) = ?")
		args = append(args, len(p.Prefix), p.Prefix)
	}

	query := `SELECT id, origin, key, value, updated_at FROM entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY origin, key LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM entries WHERE origin = ? AND key = ?`, p.Origin, p.Key)
	return err
}

// ListOrigins returns every origin that has at least one entry.
func (s *SQLiteStore) ListOrigins(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT origin FROM entries ORDER BY origin`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var origins []string
	for rows.Next() {
		var o string
		if err := rows.Scan(&o); err != nil {
			return nil, err
		}
		origins = append(origins, o)
	}
	return origins, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var updatedAt string
	if err := row.Scan(&e.ID, &e.Origin, &e.Key, &e.Value, &updatedAt); err != nil {
		return e, err
	}
	e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return e, nil
}
