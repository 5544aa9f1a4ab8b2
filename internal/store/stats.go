package store

import (
	"context"
	"os"

	"github.com/rcliao/scroll-memory/internal/model"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string        `json:"db_path"`
	DBSizeBytes  int64         `json:"db_size_bytes"`
	Origin       string        `json:"origin,omitempty"`
	TotalEntries int           `json:"total_entries"`
	Origins      []OriginStats `json:"origins"`

	// Offsets counts scroll entries under the prefix that restore cleanly;
	// Malformed counts those a restore would ignore.
	Offsets   int `json:"offsets"`
	Malformed int `json:"malformed"`
}

// OriginStats holds per-origin counts.
type OriginStats struct {
	Origin      string `json:"origin"`
	Entries     int    `json:"entries"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// StatsParams narrows Stats. An empty Origin covers every origin; an empty
// Prefix uses model.DefaultPrefix.
type StatsParams struct {
	DBPath string
	Origin string
	Prefix string
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, p StatsParams) (*Stats, error) {
	st := &Stats{DBPath: p.DBPath, Origin: p.Origin}
	if p.Prefix == "" {
		p.Prefix = model.DefaultPrefix
	}

	if p.DBPath != "" {
		if info, err := os.Stat(p.DBPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}

	where, args := "", []any{}
	if p.Origin != "" {
		where, args = " WHERE origin = ?", append(args, p.Origin)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`+where, args...).Scan(&st.TotalEntries); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT origin, COUNT(*) AS cnt, MAX(updated_at)
		FROM entries`+where+` GROUP BY origin ORDER BY cnt DESC, origin`, args...)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var o OriginStats
		if err := rows.Scan(&o.Origin, &o.Entries, &o.LastUpdated); err != nil {
			return st, err
		}
		st.Origins = append(st.Origins, o)
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	return st, s.countOffsets(ctx, st, p)
}

func (s *SQLiteStore) countOffsets(ctx context.Context, st *Stats, p StatsParams) error {
	keyPrefix := p.Prefix + "_"
	query := `SELECT value FROM entries WHERE substr(key, 1, ?) = ?`
	args := []any{len(keyPrefix), keyPrefix}
	if p.Origin != "" {
		query += " AND origin = ?"
		args = append(args, p.Origin)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return err
		}
		if _, err := model.ParseOffset(value); err != nil {
			st.Malformed++
			continue
		}
		st.Offsets++
	}
	return rows.Err()
}
