// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/footprint/activity"
	"github.com/danielhkuo/footprint/climatiq"
	"github.com/danielhkuo/footprint/cliparse"
	"github.com/danielhkuo/footprint/middleware"
	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/store"
)

// Limits on query and body sizes
const (
	DefaultDays   = 7
	MaxDays       = 366
	DefaultWeeks  = 4
	MaxWeeks      = 104
	MaxBatchItems = 100
)

var errActivityTypeNotString = errors.New("activity_type must be a string")

type EmissionsHandler struct {
	store store.Store
	calc  EmissionCalculator
	cfg   cliparse.Config
	now   func() time.Time
}

func NewEmissionsHandler(st store.Store, calc EmissionCalculator, cfg cliparse.Config) *EmissionsHandler {
	return &EmissionsHandler{store: st, calc: calc, cfg: cfg, now: time.Now}
}

// WithClock replaces the clock used for "today" and the rolling views
func (h *EmissionsHandler) WithClock(now func() time.Time) *EmissionsHandler {
	h.now = now
	return h
}

// Calculate handles POST /api/emissions/calculate
func (h *EmissionsHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := middleware.ParseJSONBody(w, r, &body); err != nil || body == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	activityType, params, err := splitActivity(body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if activityType == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_type is required")
		return
	}

	req, err := activity.Build(activityType, params)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	est, err := h.calc.Estimate(r.Context(), req)
	if err != nil {
		slog.Error("emission calculation failed", "activity_type", activityType, "error", err)
		middleware.JSONResponse(w, http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   climatiq.ErrorBody(err),
		})
		return
	}

	rec, err := h.store.Add(r.Context(), newRecord(activityType, params, est))
	if err != nil {
		slog.Error("failed to store emission record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store emission record")
		return
	}

	slog.Info("emission calculated", "record_id", rec.ID, "activity_type", activityType, "co2e", est.CO2e)

	middleware.JSONResponse(w, http.StatusOK, models.CalculateResponse{
		Success:  true,
		Message:  "Emission calculated successfully",
		RecordID: rec.ID,
		Data: models.CalculationData{
			CO2eKg:                est.CO2e,
			CO2eUnit:              est.CO2eUnit,
			CO2eCalculationMethod: est.CO2eCalculationMethod,
			EmissionFactor:        est.EmissionFactor,
			ConstituentGases:      est.ConstituentGases,
			ActivityData:          est.ActivityData,
		},
	})
}

// batchItem is the outcome of one batch entry before it is stored
type batchItem struct {
	activityType string
	params       json.RawMessage
	estimate     *climatiq.Estimate
	err          interface{}
}

// Batch handles POST /api/emissions/batch
// Entries are calculated concurrently; records are stored in input order.
func (h *EmissionsHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil || req.Emissions == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "emissions array is required")
		return
	}
	if len(req.Emissions) > MaxBatchItems {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("batch is limited to %d emissions", MaxBatchItems))
		return
	}

	items := make([]batchItem, len(req.Emissions))

	var g errgroup.Group
	g.SetLimit(max(h.cfg.BatchConcurrency, 1))
	for i, raw := range req.Emissions {
		g.Go(func() error {
			items[i] = h.calculateItem(r.Context(), raw)
			return nil
		})
	}
	g.Wait()

	resp := models.BatchResponse{
		Success:      true,
		TotalRecords: len(items),
		Results:      make([]models.BatchItemResult, 0, len(items)),
	}

	for _, item := range items {
		if item.err == nil {
			rec, err := h.store.Add(r.Context(), newRecord(item.activityType, item.params, item.estimate))
			if err != nil {
				slog.Error("failed to store emission record", "error", err)
				item.err = "Failed to store emission record"
			} else {
				resp.Results = append(resp.Results, models.BatchItemResult{
					Success:  true,
					RecordID: rec.ID,
					CO2eKg:   &item.estimate.CO2e,
				})
				resp.Successful++
				resp.TotalCO2eKg += item.estimate.CO2e
				continue
			}
		}

		resp.Results = append(resp.Results, models.BatchItemResult{
			Success: false,
			Error:   item.err,
		})
		resp.Failed++
	}

	slog.Info("batch calculated", "total", resp.TotalRecords, "successful", resp.Successful, "failed", resp.Failed)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// calculateItem maps and estimates one batch entry. Entries without a
// recognised activity type are sent to Climatiq as custom bodies.
func (h *EmissionsHandler) calculateItem(ctx context.Context, raw json.RawMessage) batchItem {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return batchItem{err: "emission must be a JSON object"}
	}

	activityType, params, err := splitActivity(body)
	if err != nil {
		return batchItem{err: err.Error()}
	}
	item := batchItem{activityType: activityType, params: params}

	req, err := activity.Build(activityType, params)
	if errors.Is(err, activity.ErrUnknownActivity) {
		req, err = activity.Build(models.ActivityCustom, params)
	}
	if err != nil {
		item.err = err.Error()
		return item
	}

	est, err := h.calc.Estimate(ctx, req)
	if err != nil {
		slog.Error("batch emission calculation failed", "activity_type", activityType, "error", err)
		item.err = climatiq.ErrorBody(err)
		return item
	}

	item.estimate = est
	return item
}

// History handles GET /api/emissions/history?period=week|month
// Without a period every record is returned.
func (h *EmissionsHandler) History(w http.ResponseWriter, r *http.Request) {
	var days int
	switch period := r.URL.Query().Get("period"); period {
	case "":
	case "week":
		days = store.WeekDays
	case "month":
		days = store.MonthDays
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "period must be week or month")
		return
	}

	records, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("failed to list emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if days > 0 {
		records = store.LastDays(records, h.now(), days)
	}

	middleware.JSONResponse(w, http.StatusOK, models.HistoryResponse{
		Success: true,
		Count:   len(records),
		Data:    records,
	})
}

// Daily handles GET /api/emissions/daily?days=N
func (h *EmissionsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", DefaultDays, MaxDays)

	records, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("failed to list emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DailyResponse{
		Success: true,
		Period:  strconv.Itoa(days) + " days",
		Data:    store.Daily(records, h.now(), days),
	})
}

// Weekly handles GET /api/emissions/weekly?weeks=N
func (h *EmissionsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	weeks := queryInt(r, "weeks", DefaultWeeks, MaxWeeks)

	records, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("failed to list emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WeeklyResponse{
		Success: true,
		Period:  strconv.Itoa(weeks) + " weeks",
		Data:    store.Weekly(records, h.now(), weeks),
	})
}

// Statistics handles GET /api/emissions/statistics
func (h *EmissionsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("failed to list emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatisticsResponse{
		Success: true,
		Data:    store.Statistics(records),
	})
}

// Today handles GET /api/emissions/today
func (h *EmissionsHandler) Today(w http.ResponseWriter, r *http.Request) {
	today := store.DateOf(h.now())

	records, err := h.store.ByDateRange(r.Context(), today, today)
	if err != nil {
		slog.Error("failed to list emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TodayResponse{
		Success:    true,
		Date:       today,
		Count:      len(records),
		TotalCO2Kg: store.Total(records),
		Data:       records,
	})
}

// Delete handles DELETE /api/emissions/{id}
func (h *EmissionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Emission record not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete emission record", "record_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("emission record deleted", "record_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Emission record deleted",
	})
}

// Clear handles DELETE /api/emissions
func (h *EmissionsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		slog.Error("failed to clear emission records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("emission records cleared")

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "All emission records deleted",
	})
}

// Search handles GET /api/emissions/search
// The query string is passed to the emission factor search unchanged.
func (h *EmissionsHandler) Search(w http.ResponseWriter, r *http.Request) {
	data, err := h.calc.Search(r.Context(), r.URL.Query())
	if err != nil {
		slog.Error("emission factor search failed", "error", err)
		middleware.JSONResponse(w, http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   climatiq.ErrorBody(err),
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse{
		Success: true,
		Data:    data,
	})
}

func newRecord(activityType string, params json.RawMessage, est *climatiq.Estimate) models.EmissionRecord {
	return models.EmissionRecord{
		ActivityType:     activityType,
		InputData:        params,
		CO2Kg:            est.CO2e,
		CO2Unit:          est.CO2eUnit,
		EmissionFactor:   est.EmissionFactor,
		ConstituentGases: est.ConstituentGases,
	}
}
