// Package database provides the SQLite setup, the character and chat message
// tables, and the data access layer (Store) on top of them.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/edgard/charsheet/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// connPragmas are set on every connection unless the DSN already sets them.
var connPragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// NewDB opens the database at dbPath with the embedded schema migrations applied.
func NewDB(dbPath string) (*sqlx.DB, error) {
	return Open(dbPath, migrations.FS)
}

// Open connects to the SQLite file at dbPath and migrates it to the latest
// version found in source. A nil source leaves the schema untouched.
func Open(dbPath string, source fs.FS) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", withPragmas(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbPath, err)
	}

	// One writer at a time; pragmas are per connection, so keep it for the pool's lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if source == nil {
		slog.Info("Database connected without migrations", "path", dbPath)
		return db, nil
	}

	version, err := ApplyMigrations(db.DB, ExtractDBNameFromPath(dbPath), source)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database after migration failure", "error", closeErr)
		}
		return nil, err
	}

	slog.Info("Database ready", "path", dbPath, "schema_version", version)
	return db, nil
}

// CloseDB closes the database connection pool.
func CloseDB(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("Error closing database connection", "error", err)
	}
}

// ApplyMigrations brings db up to the newest migration in source and returns
// the resulting schema version. A database left dirty by an interrupted
// migration is reported as an error rather than forced.
func ApplyMigrations(db *sql.DB, dbName string, source fs.FS) (uint, error) {
	if db == nil {
		return 0, errors.New("database connection is nil, cannot apply migrations")
	}
	if source == nil {
		return 0, errors.New("migration source is nil")
	}
	if dbName == "" {
		return 0, errors.New("database name/path for migration driver is empty")
	}

	sourceDriver, err := iofs.New(source, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to read migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{DatabaseName: dbName})
	if err != nil {
		return 0, fmt.Errorf("failed to create sqlite migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	start := time.Now()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	case dirty:
		return version, fmt.Errorf("schema version %d is dirty", version)
	}

	slog.Debug("Migrations checked", "database_name", dbName, "version", version, "duration", time.Since(start))
	return version, nil
}

// withPragmas appends connPragmas to dsn as _pragma query parameters,
// skipping any pragma the caller already set.
func withPragmas(dsn string) string {
	base, query, _ := strings.Cut(dsn, "?")
	params := []string{}
	if query != "" {
		params = append(params, query)
	}

	for _, p := range connPragmas {
		name := p[:strings.IndexByte(p, '(')]
		if strings.Contains(query, "_pragma="+name+"(") {
			continue
		}
		params = append(params, "_pragma="+p)
	}

	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}

// ExtractDBNameFromPath strips the "file:" prefix and query parameters from a
// SQLite DSN and URL-decodes what is left.
func ExtractDBNameFromPath(path string) string {
	path = strings.TrimPrefix(path, "file:")

	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}

	return path
}
