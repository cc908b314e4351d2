// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielhkuo/footprint/climatiq"
	"github.com/danielhkuo/footprint/models"
)

// EmissionCalculator is the emission-factor API (implemented by *climatiq.Client)
type EmissionCalculator interface {
	Estimate(ctx context.Context, req climatiq.EstimateRequest) (*climatiq.Estimate, error)
	Search(ctx context.Context, query url.Values) (json.RawMessage, error)
}

// OffsetProvider is the offset marketplace (implemented by *offsets.Client)
type OffsetProvider interface {
	Suggestions(ctx context.Context, co2Kg float64) models.SuggestionsResult
	ProjectDetails(ctx context.Context, projectID string) (json.RawMessage, error)
	CalculateCost(co2Kg, pricePerTon float64) models.OffsetCost
}

// queryInt reads a positive integer query parameter. Missing, invalid and
// non-positive values give def; values above limit are clamped.
func queryInt(r *http.Request, key string, def, limit int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, limit)
}

// splitActivity separates activity_type from the remaining activity parameters
func splitActivity(body map[string]json.RawMessage) (string, json.RawMessage, error) {
	var activityType string
	if raw, ok := body["activity_type"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &activityType); err != nil {
			return "", nil, errActivityTypeNotString
		}
	}

	rest := make(map[string]json.RawMessage, len(body))
	for k, v := range body {
		if k != "activity_type" {
			rest[k] = v
		}
	}
	params, err := json.Marshal(rest)
	if err != nil {
		return "", nil, err
	}

	return activityType, params, nil
}
