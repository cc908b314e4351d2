// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the optional SQL backend and creates its schema.

# Connecting

Open selects the driver from the database type and pings the server:

	conn, err := db.Open("postgres", "postgres://...")
	conn, err := db.Open("sqlite", "file:footprint.db")

PostgreSQL uses github.com/lib/pq. SQLite uses modernc.org/sqlite (pure Go,
no cgo) and is limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - emission_record: one row per calculated activity

JSON fields (input_data, emission_factor, constituent_gases) are TEXT.
recorded_at is fixed-width UTC text so it sorts chronologically.

# Indexes

  - emission_record.record_date (date range queries)
  - emission_record.recorded_at (insertion order)
*/
package db
