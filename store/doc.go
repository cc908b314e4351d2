// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store keeps emission records and computes aggregates over them.

# Backends

MemoryStore is the default and keeps records in a slice:

	st := store.NewMemoryStore(nil)

SQLStore persists records in the emission_record table created by
db.CreateSchema, on either PostgreSQL or SQLite:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	st := store.NewSQLStore(conn, nil)

Both take an optional clock so tests can pin "now".

# Records

Add assigns the ID (em_ + ULID), the UTC timestamp and the calendar date.
All returns records in insertion order. Delete returns ErrNotFound for
unknown IDs.

# Aggregates

Aggregates are pure functions over a record slice and an explicit now:

	records, _ := st.All(ctx)
	stats := store.Statistics(records)
	daily := store.Daily(records, time.Now(), 7)
	weekly := store.Weekly(records, time.Now(), 4)

Dates compare as YYYY-MM-DD strings, so ranges are inclusive on both ends.
*/
package store
