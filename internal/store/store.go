// Package store opens and operates the per-profile encrypted SQLite
// database. Every handle is opened fresh for one operation and closed
// after it: nothing keyed stays alive between UI-driven calls.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/migrations"
)

// EncryptedStore is a short-lived handle on one profile's database, already
// keyed and schema-checked. Obtain it with [Open], use it, close it.
type EncryptedStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// Open opens the store at storageLocation and applies key before any other
// statement runs against the handle — SQLCipher only decrypts pages once
// the key pragma has been issued, so ordering here is load-bearing. It then
// enables foreign-key enforcement and ensures the patients schema exists.
func Open(ctx context.Context, storageLocation string, key []byte, log *logger.Logger) (*EncryptedStore, error) {
	if err := os.MkdirAll(filepath.Dir(storageLocation), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningStore, err)
	}

	db, err := sql.Open("sqlite3", keyedDSN(storageLocation, key))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningStore, err)
	}

	// database/sql pools connections; the key pragma is per connection.
	// One connection max keeps the keyed connection the only one.
	db.SetMaxOpenConns(1)

	if err = applyKey(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %w", ErrOpeningStore, err)
	}

	if err = migrations.Ensure(db); err != nil {
		db.Close()
		// a wrong key surfaces here: the schema is unreadable garbage
		return nil, fmt.Errorf("%w: %w", ErrMigratingSchema, err)
	}

	return &EncryptedStore{db: db, logger: log}, nil
}

// keyedDSN carries the raw key bytes as a fixed-width hex string in the
// DSN: go-sqlcipher reads the database header at connection-open time, so
// the key must arrive with the open, not as a later statement.
func keyedDSN(storageLocation string, key []byte) string {
	return fmt.Sprintf("%s?_pragma_key=x'%s'", storageLocation, hex.EncodeToString(key))
}

// applyKey forces the first connection open so a keying failure surfaces
// here rather than on a later statement.
func applyKey(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrApplyingKey, err)
	}
	return nil
}

// Close releases the underlying handle.
func (s *EncryptedStore) Close() error {
	return s.db.Close()
}
