package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open a Postgres pool through the pgx database/sql driver.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

// Open a SQLite database file (or ":memory:").
func OpenSQLite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// Connect opens the database selected by driver ("sqlite" or "postgres") and
// returns the placeholder dialect to use with it.
func Connect(driver, sqlitePath, databaseURL string) (*sql.DB, Dialect, error) {
	switch driver {
	case "postgres":
		conn, err := Open(databaseURL)
		return conn, Postgres, err
	case "sqlite", "":
		conn, err := OpenSQLite(sqlitePath)
		return conn, SQLite, err
	default:
		return nil, SQLite, fmt.Errorf("openDB: unknown driver %q", driver)
	}
}
