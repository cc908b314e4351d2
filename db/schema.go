// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/footprint/models"
)

// Open connects to the configured database and verifies the connection.
// databaseType is "postgres" or "sqlite".
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	var driver string
	switch databaseType {
	case models.DatabasePostgres:
		driver = "postgres"
	case models.DatabaseSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}

	// SQLite allows a single writer; an in-memory database also lives on one connection
	if databaseType == models.DatabaseSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", databaseType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Column types are chosen to work unchanged on PostgreSQL and SQLite.
// JSON payloads are stored as TEXT.
const schema = `
CREATE TABLE IF NOT EXISTS emission_record (
    id TEXT PRIMARY KEY,
    recorded_at TEXT NOT NULL,
    record_date TEXT NOT NULL,
    activity_type TEXT NOT NULL DEFAULT '',
    input_data TEXT,
    co2_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
    co2_unit TEXT,
    emission_factor TEXT,
    constituent_gases TEXT
);

CREATE INDEX IF NOT EXISTS idx_emission_record_date ON emission_record(record_date);
CREATE INDEX IF NOT EXISTS idx_emission_record_recorded_at ON emission_record(recorded_at);
`
