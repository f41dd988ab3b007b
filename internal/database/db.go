package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Migrate creates the schema if it does not exist
func (db *DB) Migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS equity_data (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol      TEXT NOT NULL,
			name        TEXT NOT NULL,
			last_price  REAL NOT NULL,
			change_pct  REAL NOT NULL,
			volume      INTEGER NOT NULL,
			high_price  REAL,
			low_price   REAL,
			prev_close  REAL,
			ingested_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_equity_symbol ON equity_data(symbol, ingested_at)`,
		`CREATE TABLE IF NOT EXISTS asset_rankings (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			result_id      TEXT NOT NULL,
			fingerprint    TEXT NOT NULL,
			symbol         TEXT NOT NULL,
			name           TEXT NOT NULL,
			score          REAL NOT NULL,
			confidence     INTEGER NOT NULL,
			rank_position  INTEGER NOT NULL,
			recommendation TEXT NOT NULL,
			last_price     REAL NOT NULL,
			change         TEXT NOT NULL,
			asset_type     TEXT NOT NULL,
			created_at     TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rankings_fingerprint ON asset_rankings(fingerprint, created_at)`,
	}

	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
