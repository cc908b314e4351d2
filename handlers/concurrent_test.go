// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/store"
	"github.com/danielhkuo/footprint/testutil"
)

// concurrentBackends runs each test against both record stores
func concurrentBackends(t *testing.T) map[string]store.Store {
	t.Helper()
	mem, _ := testutil.SetupTestStore(t)
	return map[string]store.Store{
		"memory": mem,
		"sqlite": store.NewSQLStore(testutil.SetupTestDB(t), nil),
	}
}

// TestConcurrentCalculations verifies that simultaneous calculations each
// produce exactly one record with a unique ID
func TestConcurrentCalculations(t *testing.T) {
	for name, st := range concurrentBackends(t) {
		t.Run(name, func(t *testing.T) {
			handler := NewEmissionsHandler(st, &fakeCalculator{co2e: 2.5}, testutil.GetTestConfig())

			numRequests := 20
			var successCount atomic.Int32
			var wg sync.WaitGroup
			var mu sync.Mutex
			ids := make(map[string]bool)

			for i := 0; i < numRequests; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					body := fmt.Sprintf(`{"activity_type":"travel","distance":%d}`, idx+1)
					w := httptest.NewRecorder()
					handler.Calculate(w, testutil.MakeRequest("POST", "/api/emissions/calculate", body, nil))

					if w.Code != http.StatusOK {
						return
					}
					successCount.Add(1)

					var resp models.CalculateResponse
					if err := json.Unmarshal(w.Body.Bytes(), &resp); err == nil {
						mu.Lock()
						ids[resp.RecordID] = true
						mu.Unlock()
					}
				}(i)
			}

			wg.Wait()

			if int(successCount.Load()) != numRequests {
				t.Errorf("Expected %d successful calculations, got %d", numRequests, successCount.Load())
			}
			if len(ids) != numRequests {
				t.Errorf("Expected %d unique record IDs, got %d", numRequests, len(ids))
			}

			records, err := st.All(t.Context())
			if err != nil {
				t.Fatalf("Failed to list records: %v", err)
			}
			if len(records) != numRequests {
				t.Errorf("Expected %d stored records, got %d", numRequests, len(records))
			}
			if total := store.Total(records); total != 2.5*float64(numRequests) {
				t.Errorf("Expected total %.1f, got %f", 2.5*float64(numRequests), total)
			}
		})
	}
}

// TestConcurrentDeletes verifies that only one of many simultaneous
// deletes of the same record succeeds
func TestConcurrentDeletes(t *testing.T) {
	for name, st := range concurrentBackends(t) {
		t.Run(name, func(t *testing.T) {
			handler := NewEmissionsHandler(st, &fakeCalculator{}, testutil.GetTestConfig())
			rec := testutil.SeedRecord(t, st, "electricity", 10)
			keep := testutil.SeedRecord(t, st, "fuel", 5)

			numRequests := 10
			var okCount, notFoundCount atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < numRequests; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					req := testutil.MakeRequest("DELETE", "/api/emissions/"+rec.ID, nil, nil)
					req.SetPathValue("id", rec.ID)
					w := httptest.NewRecorder()

					handler.Delete(w, req)

					switch w.Code {
					case http.StatusOK:
						okCount.Add(1)
					case http.StatusNotFound:
						notFoundCount.Add(1)
					}
				}()
			}

			wg.Wait()

			if okCount.Load() != 1 {
				t.Errorf("Expected exactly 1 successful delete, got %d", okCount.Load())
			}
			if int(notFoundCount.Load()) != numRequests-1 {
				t.Errorf("Expected %d not found responses, got %d", numRequests-1, notFoundCount.Load())
			}

			records, err := st.All(t.Context())
			if err != nil {
				t.Fatalf("Failed to list records: %v", err)
			}
			if len(records) != 1 || records[0].ID != keep.ID {
				t.Errorf("Expected only %s to remain, got %+v", keep.ID, records)
			}
		})
	}
}

// TestConcurrentReadsDuringWrites runs the aggregate views while records
// are being added
func TestConcurrentReadsDuringWrites(t *testing.T) {
	st, clock := testutil.SetupTestStore(t)
	handler := NewEmissionsHandler(st, &fakeCalculator{co2e: 1}, testutil.GetTestConfig()).WithClock(clock.Now)

	views := []struct {
		path string
		fn   http.HandlerFunc
	}{
		{"/api/emissions/history", handler.History},
		{"/api/emissions/daily", handler.Daily},
		{"/api/emissions/weekly", handler.Weekly},
		{"/api/emissions/statistics", handler.Statistics},
		{"/api/emissions/today", handler.Today},
	}

	var failures atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			handler.Calculate(w, testutil.MakeRequest("POST", "/api/emissions/calculate",
				`{"activity_type":"electricity","energy":10}`, nil))
			if w.Code != http.StatusOK {
				failures.Add(1)
			}
		}()

		for _, v := range views {
			wg.Add(1)
			go func(path string, fn http.HandlerFunc) {
				defer wg.Done()
				w := httptest.NewRecorder()
				fn(w, testutil.MakeRequest("GET", path, nil, nil))
				if w.Code != http.StatusOK {
					failures.Add(1)
				}
			}(v.path, v.fn)
		}
	}

	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected no failed requests, got %d", failures.Load())
	}

	w := httptest.NewRecorder()
	handler.Statistics(w, testutil.MakeRequest("GET", "/api/emissions/statistics", nil, nil))

	var resp models.StatisticsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Data.TotalActivities != 10 {
		t.Errorf("Expected 10 activities, got %d", resp.Data.TotalActivities)
	}
}
