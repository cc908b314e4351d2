// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the footprint API.

# Handler Types

Each handler is a struct with its dependencies and the config:

  - EmissionsHandler: calculation, history, aggregates, deletion, factor search
  - OffsetsHandler: offset suggestions, cost calculation, project details

Handlers depend on small interfaces rather than concrete clients:

	emissions := handlers.NewEmissionsHandler(st, climatiqClient, cfg)
	offsets := handlers.NewOffsetsHandler(st, offsetsClient)

EmissionCalculator is satisfied by *climatiq.Client and OffsetProvider by
*offsets.Client.

# Calculation Flow

	POST /api/emissions/calculate → Calculate
	POST /api/emissions/batch     → Batch

The body's activity_type selects the mapping in package activity. The rest of
the body is the activity parameters. The estimate is stored as an
EmissionRecord and its id is returned. Upstream failures are relayed as
{"success": false, "error": <upstream body>} with status 400.

Batch entries run concurrently (cfg.BatchConcurrency at a time) and are
stored in input order. Entries without a known activity type are sent as
custom estimate bodies.

# Views

	GET /api/emissions/history    → History (period=week or month)
	GET /api/emissions/daily      → Daily (days, default 7)
	GET /api/emissions/weekly     → Weekly (weeks, default 4)
	GET /api/emissions/statistics → Statistics
	GET /api/emissions/today      → Today

# Offsets

	GET  /api/offsets/suggestions            → Suggestions (co2_kg, default: tracked total)
	POST /api/offsets/calculate              → Calculate
	GET  /api/offsets/projects/{projectId}   → Project
	GET  /api/offsets/total                  → Total
*/
package handlers
