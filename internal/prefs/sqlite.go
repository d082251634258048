package prefs

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/reviewaudio/internal/db"
)

const (
	appName      = "reviewaudio"
	dbFileName   = "prefs.db"
	boltFileName = "prefs.bolt"
)

// SQLite is a Store backed by a single-table SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
// An empty path uses the XDG data directory.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		p, err := xdg.DataFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &SQLite{db: conn}, nil
}

// migrations are applied in order; append, never edit.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prefs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

func initSchema(conn *sql.DB) error {
	return db.Migrate(conn, migrations)
}

func (s *SQLite) GetString(key, def string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def
	}
	if err != nil {
		log.Warn("could not read preference", "key", key, "err", err)
		return def
	}
	return value
}

func (s *SQLite) PutString(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Verify SQLite implements Store at compile time.
var _ Store = (*SQLite)(nil)
