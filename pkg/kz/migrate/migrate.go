package migrate

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/kozmoai/site/pkg/kz/logger"
)

// Migrator applies versioned SQL migrations from an embedded filesystem.
// Files follow golang-migrate naming: 000001_name.up.sql / 000001_name.down.sql.
type Migrator struct {
	db       *sql.DB
	log      logger.Logger
	assetsFS fs.FS
	engine   string
	path     string
}

// New creates a new Migrator for the given engine ("sqlite" or "postgres").
func New(assetsFS fs.FS, engine string, log logger.Logger) *Migrator {
	return &Migrator{
		assetsFS: assetsFS,
		engine:   engine,
		log:      log,
	}
}

// SetDB sets the database connection.
func (m *Migrator) SetDB(db *sql.DB) {
	m.db = db
}

// SetPath sets a custom migration path.
func (m *Migrator) SetPath(path string) {
	m.path = path
}

func (m *Migrator) migrationPath() string {
	if m.path != "" {
		return m.path
	}
	return fmt.Sprintf("assets/migrations/%s", m.engine)
}

// Run executes pending migrations in order.
func (m *Migrator) Run() error {
	mg, err := m.instance()
	if err != nil {
		return err
	}

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("No pending migrations")
			return nil
		}
		return fmt.Errorf("cannot apply migrations: %w", err)
	}

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("cannot read migration version: %w", err)
	}
	m.log.Infof("Migrations applied, schema version %d (dirty: %t)", version, dirty)
	return nil
}

// Down rolls back the last applied migration.
func (m *Migrator) Down() error {
	mg, err := m.instance()
	if err != nil {
		return err
	}

	if err := mg.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cannot roll back migration: %w", err)
	}
	m.log.Info("Migration rolled back")
	return nil
}

// Version returns the current schema version. Zero means nothing applied.
func (m *Migrator) Version() (uint, error) {
	mg, err := m.instance()
	if err != nil {
		return 0, err
	}
	version, _, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return version, err
}

// instance builds a migrate.Migrate bound to m.db. The returned value is
// never closed: closing it would close the shared *sql.DB.
func (m *Migrator) instance() (*migrate.Migrate, error) {
	if m.db == nil {
		return nil, errors.New("migrator has no database")
	}

	src, err := iofs.New(m.assetsFS, m.migrationPath())
	if err != nil {
		return nil, fmt.Errorf("cannot open migration source %s: %w", m.migrationPath(), err)
	}

	var driver database.Driver
	switch m.engine {
	case "sqlite":
		driver, err = sqlite3.WithInstance(m.db, &sqlite3.Config{})
	case "postgres":
		driver, err = postgres.WithInstance(m.db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration engine %q", m.engine)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot create migration driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", src, m.engine, driver)
	if err != nil {
		return nil, fmt.Errorf("cannot create migrator: %w", err)
	}
	return mg, nil
}
