package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// SQL is a Store backed by the kv_store table.
type SQL struct {
	db       *sql.DB
	log      *slog.Logger
	getQuery string
	setQuery string
}

// NewSQL returns a Store over db. dialect is "sqlite3" or "postgres"; the
// kv_store table must already exist.
func NewSQL(db *sql.DB, dialect string, log *slog.Logger) (*SQL, error) {
	if log == nil {
		log = slog.Default()
	}

	s := &SQL{db: db, log: log}
	switch dialect {
	case "sqlite3":
		s.getQuery = `SELECT value FROM kv_store WHERE key = ?`
		s.setQuery = `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`
	case "postgres":
		s.getQuery = `SELECT value FROM kv_store WHERE key = $1`
		s.setQuery = `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
		`
	default:
		return nil, fmt.Errorf("unsupported kv dialect %q", dialect)
	}

	return s, nil
}

func (s *SQL) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Warn("kv get failed", "key", key, "err", err)
		return "", false
	}
	return value, true
}

func (s *SQL) Set(key, value string) {
	if _, err := s.db.Exec(s.setQuery, key, value); err != nil {
		s.log.Warn("kv set failed", "key", key, "err", err)
	}
}
