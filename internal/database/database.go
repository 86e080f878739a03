package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/farmledger/farmledger/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps database/sql with knowledge of the configured dialect. Queries in
// the repositories are written with "?" placeholders; Rebind translates them
// to "$N" when the backend is Postgres.
type DB struct {
	*sql.DB
	driver string
}

func (d *DB) Driver() string {
	return d.driver
}

func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Wrap adopts an already-open connection, e.g. the in-memory database used in
// tests.
func Wrap(db *sql.DB, driver string) *DB {
	return &DB{DB: db, driver: driver}
}

// Open opens the configured database and verifies connectivity.
func Open(cfg config.Database) (*DB, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		db, err := sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		return &DB{DB: db, driver: DriverSQLite}, nil
	case DriverPostgres:
		db, err := sql.Open("pgx", postgresDSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		if err := db.Ping(); err != nil {
			return nil, err
		}
		return &DB{DB: db, driver: DriverPostgres}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Migrate runs database migrations using golang-migrate against the
// configured DB. Each dialect has its own migration set.
func Migrate(cfg config.Database) error {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	migrationsPath, err := findMigrationsPath(driver)
	if err != nil {
		return fmt.Errorf("failed to locate migrations directory: %w", err)
	}

	var dbUrl string
	switch driver {
	case DriverSQLite:
		dbUrl = "sqlite://" + cfg.Path
	case DriverPostgres:
		escapedPassword := url.QueryEscape(cfg.Pass)
		dbUrl = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s",
			cfg.User, escapedPassword, cfg.Host, cfg.Port, cfg.Name, cfg.Schema)
	default:
		return fmt.Errorf("unsupported database driver: %q", driver)
	}

	m, err := migrate.New("file://"+migrationsPath, dbUrl)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

func postgresDSN(cfg config.Database) string {
	escapedPassword := strings.ReplaceAll(cfg.Pass, "'", "\\'")
	return fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=disable options='-c search_path=%s'",
		cfg.Host, cfg.Port, cfg.User, escapedPassword, cfg.Name, cfg.Schema)
}

// findMigrationsPath searches upward from the current working directory for
// the migrations directory of the given dialect. This makes migrations
// resolution robust in tests where the working directory can be different
// from the project root.
func findMigrationsPath(driver string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "migrations", driver)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", err
			}
			return abs, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("migrations directory for %q not found", driver)
}
