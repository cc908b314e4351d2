// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request gets an X-Request-ID (taken from the request or
generated as a UUID) which is echoed on the response and included in both
log lines.

# Panic Recovery

Recover converts a panicking handler into a 500 JSON error:

	server := http.Server{
		Handler: middleware.CORS(middleware.Recover(mux)),
	}

# CORS Middleware

CORS allows cross-origin requests from the web client. It allows methods
GET, POST, PUT, DELETE, OPTIONS with headers Content-Type, Authorization,
X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Error bodies look like {"success": false, "error": "message"}.

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.BatchRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
