// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/footprint/cliparse"
	"github.com/danielhkuo/footprint/db"
	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/store"
)

// Now is the starting time of every test clock: 2025-03-15 12:00 UTC
var Now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

// Clock is an adjustable clock for stores and handlers
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock() *Clock {
	return &Clock{t: Now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set moves the clock to t
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// DaysAgo moves the clock to n days before Now
func (c *Clock) DaysAgo(n int) {
	c.Set(Now.AddDate(0, 0, -n))
}

// SetupTestStore returns an empty in-memory store and the clock it stamps records with
func SetupTestStore(t *testing.T) (*store.MemoryStore, *Clock) {
	t.Helper()
	clock := NewClock()
	return store.NewMemoryStore(clock.Now), clock
}

// SetupTestDB opens an in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(models.DatabaseSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3000,
		DatabaseType:     models.DatabaseMemory,
		ClimatiqAPIKey:   "test-climatiq-key",
		RequestTimeout:   5 * time.Second,
		BatchConcurrency: 4,
		LogLevel:         "info",
	}
}

// SeedRecord stores a record with the given type and CO₂e at the store's current time
func SeedRecord(t *testing.T, st store.Store, activityType string, co2Kg float64) models.EmissionRecord {
	t.Helper()

	rec, err := st.Add(t.Context(), models.EmissionRecord{
		ActivityType: activityType,
		InputData:    json.RawMessage(`{}`),
		CO2Kg:        co2Kg,
		CO2Unit:      "kg",
	})
	if err != nil {
		t.Fatalf("Failed to seed record: %v", err)
	}
	return rec
}

// Upstream is a fake HTTP API that records requests and answers from a
// per-path table. Unknown paths get 404.
type Upstream struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]UpstreamResponse
	requests  []UpstreamRequest
}

type UpstreamResponse struct {
	Status int
	Body   string
}

type UpstreamRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// NewUpstream starts a fake API that is closed when the test ends
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{responses: make(map[string]UpstreamResponse)}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

// Respond sets the reply for "METHOD /path"
func (u *Upstream) Respond(route string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.responses[route] = UpstreamResponse{Status: status, Body: body}
}

// Requests returns the requests received so far
func (u *Upstream) Requests() []UpstreamRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]UpstreamRequest, len(u.requests))
	copy(out, u.requests)
	return out
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	u.mu.Lock()
	u.requests = append(u.requests, UpstreamRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	resp, ok := u.responses[r.Method+" "+r.URL.Path]
	u.mu.Unlock()

	if !ok {
		resp = UpstreamResponse{Status: http.StatusNotFound, Body: `{"error":"not_found","message":"Not found"}`}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	w.Write([]byte(resp.Body))
}

// EstimateBody is a Climatiq estimate response for co2e kg
func EstimateBody(co2e float64) string {
	b, _ := json.Marshal(map[string]interface{}{
		"co2e":                    co2e,
		"co2e_unit":               "kg",
		"co2e_calculation_method": "ar5",
		"emission_factor":         map[string]interface{}{"activity_id": "test-activity", "source": "TEST"},
		"constituent_gases":       map[string]interface{}{"co2e_total": co2e, "co2": co2e},
		"activity_data":           map[string]interface{}{"activity_value": 1, "activity_unit": "kWh"},
	})
	return string(b)
}

// MakeRequest creates an HTTP test request. A string body is sent as-is.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
