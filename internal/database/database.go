// Package database archives navigation data sheets in sqlite.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path of the sheet export database
func DBPath() string {
	return filepath.Join("data", "navdata.db")
}

// Open opens (creating if needed) the export database at dbPath and
// makes sure the schema exists.
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the export tables if they don't exist. Safe to
// call repeatedly; existing exports are kept.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS nav_sheets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			grid_zone_designator TEXT,
			modifiers TEXT NOT NULL,
			angle_unit TEXT NOT NULL,
			distance_unit TEXT NOT NULL,
			time_format TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS nav_rows (
			sheet_id INTEGER NOT NULL REFERENCES nav_sheets(id) ON DELETE CASCADE,
			serial INTEGER NOT NULL,
			grid_from TEXT NOT NULL,
			grid_to TEXT NOT NULL,
			from_10 TEXT NOT NULL,
			to_10 TEXT NOT NULL,
			bearing REAL NOT NULL,
			distance REAL NOT NULL,
			meters INTEGER NOT NULL,
			time TEXT NOT NULL,
			going TEXT,
			remarks TEXT,
			PRIMARY KEY (sheet_id, serial)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating export tables: %w", err)
	}
	return nil
}
