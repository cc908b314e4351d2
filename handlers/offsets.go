// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/danielhkuo/footprint/activity"
	"github.com/danielhkuo/footprint/middleware"
	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/offsets"
	"github.com/danielhkuo/footprint/store"
)

type OffsetsHandler struct {
	store   store.Store
	offsets OffsetProvider
}

func NewOffsetsHandler(st store.Store, provider OffsetProvider) *OffsetsHandler {
	return &OffsetsHandler{store: st, offsets: provider}
}

// Suggestions handles GET /api/offsets/suggestions?co2_kg=X
// Without a usable co2_kg (missing, zero, NaN or infinite) the total of all
// tracked emissions is used.
func (h *OffsetsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	co2Kg, err := activity.ParseNumber(json.RawMessage(r.URL.Query().Get("co2_kg")))
	if err != nil || co2Kg == 0 {
		records, err := h.store.All(r.Context())
		if err != nil {
			slog.Error("failed to list emission records", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		co2Kg = store.Total(records)
	}

	if !(co2Kg > 0) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "co2_kg must be greater than 0")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.offsets.Suggestions(r.Context(), co2Kg))
}

// Calculate handles POST /api/offsets/calculate
func (h *OffsetsHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.OffsetCostRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	co2Kg, err := activity.ParseNumber(req.CO2Kg)
	if err != nil || co2Kg <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Valid co2_kg (greater than 0) is required")
		return
	}

	var pricePerTon float64
	if len(req.PricePerTon) > 0 && string(req.PricePerTon) != "null" {
		pricePerTon, err = activity.ParseNumber(req.PricePerTon)
		if err != nil || pricePerTon <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "price_per_ton must be greater than 0")
			return
		}
	}

	cost := h.offsets.CalculateCost(co2Kg, pricePerTon)
	if math.IsInf(cost.TotalCost, 0) || math.IsNaN(cost.TotalCost) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "co2_kg and price_per_ton are too large")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse{
		Success: true,
		Data:    cost,
	})
}

// Project handles GET /api/offsets/projects/{projectId}
func (h *OffsetsHandler) Project(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectId")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "projectId is required")
		return
	}

	data, err := h.offsets.ProjectDetails(r.Context(), projectID)
	if err != nil {
		slog.Warn("offset project lookup failed", "project_id", projectID, "error", err)
		middleware.JSONResponse(w, http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   offsets.ErrorBody(err),
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse{
		Success: true,
		Data:    data,
	})
}

// Total handles GET /api/offsets/total
// Returns the emissions summary with offset suggestions for everything tracked.
func (h *OffsetsHandler) Total(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("failed to list emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	stats := store.Statistics(records)
	summary := models.EmissionsSummary{
		TotalCO2Kg:      stats.TotalEmissionsKg,
		TotalCO2Tons:    stats.TotalEmissionsTons,
		TotalActivities: stats.TotalActivities,
		ByActivity:      stats.ByActivity,
	}

	if stats.TotalEmissionsKg <= 0 {
		empty := h.offsets.CalculateCost(0, 0)
		middleware.JSONResponse(w, http.StatusOK, models.OffsetTotalResponse{
			Success:          true,
			Message:          "No emissions tracked yet",
			EmissionsSummary: summary,
			Data: &models.OffsetSuggestions{
				TotalCO2Kg:   0,
				TotalCO2Tons: store.FormatTons(0),
				EstimatedOffsetCost: models.EstimatedCost{
					Amount:   "0.00",
					Currency: empty.Currency,
				},
				SuggestedProjects: []models.OffsetProject{},
				Recommendations:   []string{},
			},
		})
		return
	}

	suggestions := h.offsets.Suggestions(r.Context(), stats.TotalEmissionsKg)

	middleware.JSONResponse(w, http.StatusOK, models.OffsetTotalResponse{
		Success:           true,
		EmissionsSummary:  summary,
		OffsetSuggestions: suggestions.Data,
	})
}
