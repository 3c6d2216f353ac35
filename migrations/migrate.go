package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

var (
	setupOnce sync.Once
	setupErr  error
)

// Ensure brings the per-profile store schema up to date. Safe to call on
// every store open: goose records applied versions and does nothing when
// the schema already matches.
func Ensure(db *sql.DB) error {
	setupOnce.Do(func() {
		goose.SetBaseFS(embedMigrations)
		goose.SetLogger(goose.NopLogger())
		setupErr = goose.SetDialect("sqlite3")
	})
	if setupErr != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", setupErr)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
