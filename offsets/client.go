// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package offsets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/footprint/models"
)

const DefaultBaseURL = "https://api.goldstandard.org"

var ErrNotConfigured = errors.New("API key not configured")

// APIError is a non-2xx reply from the Gold Standard API. Body is always valid JSON.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gold standard: status %d: %s", e.StatusCode, e.Body)
}

// ErrorBody returns the JSON to relay to API clients for err
func ErrorBody(err error) interface{} {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return err.Error()
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	catalog Catalog
}

// NewClient creates a Gold Standard client. Without an API key every
// suggestion comes from the catalog.
func NewClient(baseURL, apiKey string, httpClient *http.Client, catalog Catalog) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
		catalog: catalog,
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Suggestions returns offset projects for co2Kg. It never fails: without an
// API key, or when the upstream call fails, catalog data is returned with Mock set.
func (c *Client) Suggestions(ctx context.Context, co2Kg float64) models.SuggestionsResult {
	if !c.Configured() {
		return c.fallback(co2Kg)
	}

	query := url.Values{"co2_amount": {strconv.FormatFloat(co2Kg, 'f', -1, 64)}}
	raw, err := c.get(ctx, "/projects", query)
	if err != nil {
		slog.Error("gold standard suggestions failed, using catalog", "error", err)
		return c.fallback(co2Kg)
	}

	return models.SuggestionsResult{Success: true, Data: raw}
}

// ProjectDetails fetches a single project
func (c *Client) ProjectDetails(ctx context.Context, projectID string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	return c.get(ctx, "/projects/"+url.PathEscape(projectID), nil)
}

// CalculateCost prices offsetting co2Kg. A non-positive price uses the catalog price.
func (c *Client) CalculateCost(co2Kg, pricePerTon float64) models.OffsetCost {
	if pricePerTon <= 0 {
		pricePerTon = c.catalog.PricePerTon
	}
	tons := co2Kg / 1000

	return models.OffsetCost{
		CO2Kg:       co2Kg,
		CO2Tons:     tons,
		PricePerTon: pricePerTon,
		TotalCost:   tons * pricePerTon,
		Currency:    c.catalog.Currency,
	}
}

func (c *Client) fallback(co2Kg float64) models.SuggestionsResult {
	return models.SuggestionsResult{
		Success: true,
		Data:    c.FallbackSuggestions(co2Kg),
		Mock:    true,
	}
}

// FallbackSuggestions builds suggestions from the catalog
func (c *Client) FallbackSuggestions(co2Kg float64) models.OffsetSuggestions {
	tons := co2Kg / 1000
	cost := tons * c.catalog.PricePerTon

	projects := make([]models.OffsetProject, len(c.catalog.Projects))
	copy(projects, c.catalog.Projects)

	recommendations := make([]string, 0, len(c.catalog.Recommendations)+1)
	recommendations = append(recommendations, fmt.Sprintf(
		"To offset %s tons of CO₂, consider investing in carbon offset projects",
		humanize.FormatFloat("#,###.##", tons)))
	recommendations = append(recommendations, c.catalog.Recommendations...)

	return models.OffsetSuggestions{
		TotalCO2Kg:   co2Kg,
		TotalCO2Tons: strconv.FormatFloat(tons, 'f', 3, 64),
		EstimatedOffsetCost: models.EstimatedCost{
			Amount:   strconv.FormatFloat(cost, 'f', 2, 64),
			Currency: c.catalog.Currency,
		},
		SuggestedProjects: projects,
		Recommendations:   recommendations,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gold standard request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gold standard request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gold standard response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: raw}
		if !json.Valid(raw) {
			msg := strings.TrimSpace(string(raw))
			if msg == "" {
				msg = http.StatusText(resp.StatusCode)
			}
			apiErr.Body, _ = json.Marshal(map[string]string{"message": msg})
		}
		return nil, apiErr
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("gold standard returned invalid JSON (status %d)", resp.StatusCode)
	}
	return raw, nil
}
