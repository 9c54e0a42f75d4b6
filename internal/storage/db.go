// Package storage keeps solve statistics in SQLite.
//
// A solve starts when the puzzle is scrambled and ends when it is solved,
// reset or scrambled again. The turns made in between are stored with it.
// Puzzle state itself is never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the solve database.
type DB struct {
	*sql.DB
}

// Open opens the database at path, creating the file and its directory if
// needed, and brings the schema up to date.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(2000)")
	conn, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := applyMigrations(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{DB: conn}, nil
}

// SchemaVersion returns the newest migration applied.
func (db *DB) SchemaVersion() (int, error) {
	return schemaVersion(db.DB)
}
