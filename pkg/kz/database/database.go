package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/migrate"
)

// Database manages the database connection and lifecycle.
// The "sqlite" driver keeps leads in a local file; "postgres" targets the
// hosted database.
type Database struct {
	DB            *sql.DB
	assetsFS      fs.FS
	migrationPath string
	cfg           *config.Config
	log           logger.Logger
}

// New creates a new Database instance.
func New(assetsFS fs.FS, cfg *config.Config, log logger.Logger) *Database {
	return &Database{
		assetsFS: assetsFS,
		cfg:      cfg,
		log:      log,
	}
}

// SetMigrationPath sets a custom migration path.
func (d *Database) SetMigrationPath(path string) {
	d.migrationPath = path
}

// Driver returns the configured driver name ("sqlite" or "postgres").
func (d *Database) Driver() string {
	if d.cfg.Database.IsPostgres() {
		return "postgres"
	}
	return "sqlite"
}

// Start opens the database connection and runs migrations.
func (d *Database) Start(ctx context.Context) error {
	db, err := d.open()
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("cannot ping database: %w", err)
	}

	d.DB = db
	d.log.Infof("Database connection established (%s)", d.Driver())

	migrator := migrate.New(d.assetsFS, d.Driver(), d.log)
	migrator.SetDB(d.DB)
	if d.migrationPath != "" {
		migrator.SetPath(d.migrationPath)
	}
	if err := migrator.Run(); err != nil {
		return fmt.Errorf("cannot run migrations: %w", err)
	}

	return nil
}

func (d *Database) open() (*sql.DB, error) {
	if d.cfg.Database.IsPostgres() {
		if d.cfg.Database.DSN == "" {
			return nil, fmt.Errorf("database.dsn is required for the postgres driver")
		}
		db, err := sql.Open("postgres", d.cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("cannot open database: %w", err)
		}
		if n := d.cfg.Database.MaxOpenConns; n > 0 {
			db.SetMaxOpenConns(n)
			db.SetMaxIdleConns(n)
		}
		db.SetConnMaxLifetime(30 * time.Minute)
		return db, nil
	}

	dbDir := filepath.Dir(d.cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create database directory: %w", err)
	}

	// WAL mode lets the health check read while a lead is being written.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", d.cfg.Database.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return db, nil
}

// Stop closes the database connection.
func (d *Database) Stop(ctx context.Context) error {
	if d.DB != nil {
		d.log.Info("Closing database connection")
		return d.DB.Close()
	}
	return nil
}

// GetDB returns the underlying sql.DB.
func (d *Database) GetDB() *sql.DB {
	return d.DB
}

// Ping checks the connection, for health endpoints.
func (d *Database) Ping(ctx context.Context) error {
	if d.DB == nil {
		return fmt.Errorf("database not started")
	}
	return d.DB.PingContext(ctx)
}
