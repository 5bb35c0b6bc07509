package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialects understood by Up.
const (
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

//go:embed sql/*.sql
var embedded embed.FS

// Up runs all pending embedded SQL migrations against db.
func Up(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedded)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
