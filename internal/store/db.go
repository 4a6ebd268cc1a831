// Package store is the persistence backend: notes and categories in a sqlite
// database, whose schema is managed by migrations embedded in the binary.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

// FileName is the name of the database file within the data directory.
const FileName = "notelist.db"

//go:embed migrations/*.sql
var migrations embed.FS

// Store persists notes and categories.
type Store struct {
	db *sql.DB
}

// Open opens, creating if necessary, the database in the data directory, and
// migrates its schema to the latest version.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	path := filepath.Join(dataDir, FileName)

	if err := migrateUp(path); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite permits only one writer at a time.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// migrateUp applies all up migrations. It uses its own connection, which
// migrate closes when done.
func migrateUp(path string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// DB exposes the underlying database for other tables sharing the file, such
// as local key-value storage.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
