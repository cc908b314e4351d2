// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the footprint API server.

footprint is a carbon footprint tracker backend. It turns everyday activities
(electricity, travel, freight, purchases, fuel) into CO₂e estimates through the
Climatiq API, keeps the resulting records, and suggests carbon offset projects
through the Gold Standard API.

# Starting the Server

With no configuration the server keeps records in memory:

	CLIMATIQ_API_KEY=... go run .

Or with flags and a persistent store:

	go run . -p 3000 -t sqlite -d footprint.db -static ./public

A .env file in the working directory is loaded first. Variables already in
the environment win.

# Configuration

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): memory, sqlite or postgres (default: memory)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - CLIMATIQ_API_KEY (-climatiq-key): Climatiq bearer token
  - GOLD_STANDARD_API_KEY (-goldstandard-key): Gold Standard bearer token; without it suggestions come from the offset catalog
  - OFFSET_CATALOG (-catalog): YAML file replacing the built-in offset catalog
  - STATIC_DIR (-static): web client directory served at /
  - REQUEST_TIMEOUT (-timeout): upstream HTTP timeout (default: 30s)
  - BATCH_CONCURRENCY (-batch-concurrency): parallel estimates per batch (default: 4)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - handlers: HTTP request handlers (emissions, offsets)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, JSON helpers
  - models: Record, aggregate and request/response types
  - store: Record store (memory or SQL) and aggregates
  - activity: Activity to Climatiq estimate mapping
  - climatiq: Climatiq API client
  - offsets: Gold Standard client and offset catalog
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
