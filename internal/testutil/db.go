package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/migrate"
)

const sqliteMigrations = "assets/migrations/sqlite"

// NewTestDB creates a new in-memory SQLite database with all migrations applied.
func NewTestDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := ApplyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot apply migrations: %w", err)
	}

	return db, nil
}

// ApplyMigrations applies the SQLite migrations found above the working
// directory.
func ApplyMigrations(db *sql.DB) error {
	root := findRepoRoot()
	if root == "" {
		return fmt.Errorf("migrations directory not found")
	}

	m := migrate.New(os.DirFS(root), "sqlite", logger.NewNoopLogger())
	m.SetDB(db)
	return m.Run()
}

func findRepoRoot() string {
	dir := "."
	for range 6 {
		if _, err := os.Stat(filepath.Join(dir, sqliteMigrations)); err == nil {
			return dir
		}
		dir = filepath.Join(dir, "..")
	}
	return ""
}

// TestDBProvider implements DBProvider for testing.
type TestDBProvider struct {
	DB *sql.DB
}

func (p *TestDBProvider) GetDB() *sql.DB {
	return p.DB
}

// Driver reports the SQLite driver used by NewTestDB.
func (p *TestDBProvider) Driver() string {
	return "sqlite"
}
