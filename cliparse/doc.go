// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                  Server port (default: 3000)
	-t                  Database type: memory, sqlite, postgres (default: memory)
	-d                  Database URL
	-climatiq-key       Climatiq API key
	-climatiq-url       Climatiq base URL
	-goldstandard-key   Gold Standard API key
	-goldstandard-url   Gold Standard base URL
	-catalog            Offset catalog YAML file
	-static             Web client directory
	-timeout            Upstream request timeout (default: 30s)
	-batch-concurrency  Concurrent upstream calls per batch (default: 4)
	-log-level          debug, info, warn, error (default: info)

# Environment Variables

Flags fall back to environment variables:

	PORT                  → -p
	DATABASE_TYPE         → -t
	DATABASE_URL          → -d
	CLIMATIQ_API_KEY      → -climatiq-key
	CLIMATIQ_API_URL      → -climatiq-url
	GOLD_STANDARD_API_KEY → -goldstandard-key
	GOLD_STANDARD_API_URL → -goldstandard-url
	OFFSET_CATALOG        → -catalog
	STATIC_DIR            → -static
	REQUEST_TIMEOUT       → -timeout
	BATCH_CONCURRENCY     → -batch-concurrency
	LOG_LEVEL             → -log-level

CLI flags take precedence over environment variables. LoadDotEnv fills the
environment from a .env file first, without overriding variables that are
already set.

# Validation

ParseFlags returns an error if:

  - the database type is not memory, sqlite or postgres
  - DATABASE_URL is missing for sqlite or postgres
  - PORT, REQUEST_TIMEOUT or BATCH_CONCURRENCY do not parse

Missing API keys are not errors: calculations fail upstream without a
Climatiq key, and offset suggestions use the built-in catalog without a
Gold Standard key.

# Example

	// In main.go
	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
