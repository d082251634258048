// Package db holds small helpers shared by SQLite-backed stores.
package db

import (
	"database/sql"
	"fmt"
)

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the database's PRAGMA user_version.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow(`PRAGMA user_version`).Scan(&v)
	return v, err
}

// Migrate applies the statements in steps that the database has not seen
// yet. steps[i] moves the schema from version i to i+1; each step runs in
// its own transaction together with the version bump.
func Migrate(db *sql.DB, steps []string) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > len(steps) {
		return fmt.Errorf("schema version %d is newer than supported %d", current, len(steps))
	}

	for v := current; v < len(steps); v++ {
		err := WithTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(steps[v]); err != nil {
				return err
			}
			// PRAGMA does not accept bound parameters
			_, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, v+1))
			return err
		})
		if err != nil {
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
	}
	return nil
}
