package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // Pure Go SQLite driver
)

const defaultPostgresDSN = "postgres://localhost/clientdb?sslmode=disable"

// sqlOpen is swapped in tests.
var sqlOpen = sql.Open

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	driver string
	create string
	get    string
	put    string
	del    string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		create: `CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		)`,
		get: `SELECT payload FROM slots WHERE key = ?`,
		put: `INSERT INTO slots (key, payload) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		del: `DELETE FROM slots WHERE key = ?`,
	}

	postgresDialect = dialect{
		driver: "pgx",
		create: `CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			payload BYTEA NOT NULL
		)`,
		get: `SELECT payload FROM slots WHERE key = $1`,
		put: `INSERT INTO slots (key, payload) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`,
		del: `DELETE FROM slots WHERE key = $1`,
	}
)

// SQL stores slots as rows of a single table.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLite opens a SQLite file at path and ensures the slots table exists.
func NewSQLite(ctx context.Context, path string) (*SQL, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sqlOpen(sqliteDialect.driver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	return newSQL(ctx, db, sqliteDialect)
}

// NewPostgres connects to dsn (falls back to a localhost default) and ensures
// the slots table exists.
func NewPostgres(ctx context.Context, dsn string) (*SQL, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}

	db, err := sqlOpen(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return newSQL(ctx, db, postgresDialect)
}

func newSQL(ctx context.Context, db *sql.DB, d dialect) (*SQL, error) {
	if _, err := db.ExecContext(ctx, d.create); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQL{db: db, dialect: d}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}

	return payload, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.put, key, value); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}

	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.del, key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}
