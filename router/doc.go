// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the footprint API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, climatiqClient, offsetsClient, cfg)

# Endpoints

Health:

	GET /health     - Plain "OK"
	GET /api/health - JSON status with timestamp

Emissions:

	POST   /api/emissions/calculate  - Estimate one activity and record it
	POST   /api/emissions/batch      - Estimate up to 100 activities
	GET    /api/emissions/search     - Proxy Climatiq emission factor search
	GET    /api/emissions/history    - All records, or period=week|month
	GET    /api/emissions/daily      - Per-day totals (days=7)
	GET    /api/emissions/weekly     - Per-week totals (weeks=4)
	GET    /api/emissions/statistics - Totals and averages
	GET    /api/emissions/today      - Today's records
	DELETE /api/emissions/{id}       - Delete one record
	DELETE /api/emissions            - Delete all records

Offsets:

	GET  /api/offsets/suggestions             - Projects for co2_kg or the tracked total
	POST /api/offsets/calculate               - Cost of offsetting co2_kg
	GET  /api/offsets/projects/{projectId}    - Gold Standard project details
	GET  /api/offsets/total                   - Suggestions for everything tracked

Any other /api/ path answers 404 with a JSON error. Everything else is
served from Config.StaticDir when set, with login.html at the root.

# Handler Initialization

	emissionsHandler := handlers.NewEmissionsHandler(st, calc, cfg)
	offsetsHandler := handlers.NewOffsetsHandler(st, offs)

Both handlers share the record store. API routes are wrapped in
middleware.WithLogging; CORS and panic recovery wrap the whole mux in main.
*/
package router
