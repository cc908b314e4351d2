// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/danielhkuo/footprint/cliparse"
	"github.com/danielhkuo/footprint/handlers"
	"github.com/danielhkuo/footprint/middleware"
	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/store"
)

func NewRouter(st store.Store, calc handlers.EmissionCalculator, offs handlers.OffsetProvider, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	emissionsHandler := handlers.NewEmissionsHandler(st, calc, cfg)
	offsetsHandler := handlers.NewOffsetsHandler(st, offs)

	// Health checks
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:    "OK",
			Message:   "Carbon Footprint Calculator API is running",
			Timestamp: time.Now().UTC(),
		})
	})

	// Emission calculation
	mux.HandleFunc("POST /api/emissions/calculate", middleware.WithLogging(emissionsHandler.Calculate))
	mux.HandleFunc("POST /api/emissions/batch", middleware.WithLogging(emissionsHandler.Batch))
	mux.HandleFunc("GET /api/emissions/search", middleware.WithLogging(emissionsHandler.Search))

	// Emission views
	mux.HandleFunc("GET /api/emissions/history", middleware.WithLogging(emissionsHandler.History))
	mux.HandleFunc("GET /api/emissions/daily", middleware.WithLogging(emissionsHandler.Daily))
	mux.HandleFunc("GET /api/emissions/weekly", middleware.WithLogging(emissionsHandler.Weekly))
	mux.HandleFunc("GET /api/emissions/statistics", middleware.WithLogging(emissionsHandler.Statistics))
	mux.HandleFunc("GET /api/emissions/today", middleware.WithLogging(emissionsHandler.Today))

	// Record management
	mux.HandleFunc("DELETE /api/emissions/{id}", middleware.WithLogging(emissionsHandler.Delete))
	mux.HandleFunc("DELETE /api/emissions", middleware.WithLogging(emissionsHandler.Clear))

	// Offsets
	mux.HandleFunc("GET /api/offsets/suggestions", middleware.WithLogging(offsetsHandler.Suggestions))
	mux.HandleFunc("POST /api/offsets/calculate", middleware.WithLogging(offsetsHandler.Calculate))
	mux.HandleFunc("GET /api/offsets/projects/{projectId}", middleware.WithLogging(offsetsHandler.Project))
	mux.HandleFunc("GET /api/offsets/total", middleware.WithLogging(offsetsHandler.Total))

	// Unmatched API routes
	mux.HandleFunc("/api/", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Message: "Route not found",
				Status:  http.StatusNotFound,
			},
		})
	}))

	// Web client or root banner. "GET /" would conflict with "/api/".
	if cfg.StaticDir != "" {
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "login.html"))
		})
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("footprint API v1"))
		})
	}

	return mux
}
