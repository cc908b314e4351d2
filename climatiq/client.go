// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package climatiq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://api.climatiq.io"

// DataVersion pins emission factors to data release 27 and its minor updates
const DataVersion = "^27"

const (
	estimatePath = "/data/v1/estimate"
	searchPath   = "/data/v1/search"
)

type EmissionFactor struct {
	ActivityID  string `json:"activity_id"`
	DataVersion string `json:"data_version"`
	Region      string `json:"region,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// EstimateRequest is the body of POST /data/v1/estimate.
// When Raw is set it is sent verbatim and the other fields are ignored.
type EstimateRequest struct {
	EmissionFactor EmissionFactor
	Parameters     map[string]interface{}
	Raw            json.RawMessage
}

func (r EstimateRequest) MarshalJSON() ([]byte, error) {
	if r.Raw != nil {
		return r.Raw, nil
	}
	return json.Marshal(struct {
		EmissionFactor EmissionFactor         `json:"emission_factor"`
		Parameters     map[string]interface{} `json:"parameters"`
	}{r.EmissionFactor, r.Parameters})
}

// Estimate is the subset of the estimate response the API exposes
type Estimate struct {
	CO2e                  float64         `json:"co2e"`
	CO2eUnit              string          `json:"co2e_unit"`
	CO2eCalculationMethod string          `json:"co2e_calculation_method"`
	EmissionFactor        json.RawMessage `json:"emission_factor"`
	ConstituentGases      json.RawMessage `json:"constituent_gases"`
	ActivityData          json.RawMessage `json:"activity_data"`
}

// APIError is a non-2xx reply from Climatiq. Body is always valid JSON.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("climatiq: status %d: %s", e.StatusCode, e.Body)
}

// ErrorBody returns the JSON to relay to API clients for err
func ErrorBody(err error) json.RawMessage {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return messageBody(err.Error())
}

func messageBody(msg string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"message": msg})
	return b
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Climatiq client. An empty baseURL means DefaultBaseURL,
// a nil httpClient means http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
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
	}
}

// Estimate calculates emissions for a single activity
func (c *Client) Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode estimate request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, estimatePath, nil, body)
	if err != nil {
		return nil, err
	}

	var est Estimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return nil, fmt.Errorf("failed to decode estimate response: %w", err)
	}
	return &est, nil
}

// Search queries the emission factor database; query is passed through unchanged
func (c *Client) Search(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, searchPath, query, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build climatiq request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("climatiq request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read climatiq response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: raw}
		if !json.Valid(raw) {
			msg := strings.TrimSpace(string(raw))
			if msg == "" {
				msg = http.StatusText(resp.StatusCode)
			}
			apiErr.Body = messageBody(msg)
		}
		return nil, apiErr
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("climatiq returned invalid JSON (status %d)", resp.StatusCode)
	}
	return raw, nil
}
