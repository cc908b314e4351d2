// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/footprint/db"
	"github.com/danielhkuo/footprint/models"
)

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) daysAgo(n int) {
	c.mu.Lock()
	c.t = testNow.AddDate(0, 0, -n)
	c.mu.Unlock()
}

func newMemory(t *testing.T) (Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: testNow}
	return NewMemoryStore(clock.now), clock
}

func newSQLite(t *testing.T) (Store, *fakeClock) {
	t.Helper()

	conn, err := db.Open(models.DatabaseSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.CreateSchema(conn))

	clock := &fakeClock{t: testNow}
	return NewSQLStore(conn, clock.now), clock
}

// Both backends must behave the same
var backends = []struct {
	name string
	open func(t *testing.T) (Store, *fakeClock)
}{
	{"memory", newMemory},
	{"sqlite", newSQLite},
}

func TestStore_AddAssignsFields(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			st, _ := b.open(t)
			ctx := context.Background()

			rec, err := st.Add(ctx, models.EmissionRecord{
				ActivityType: models.ActivityElectricity,
				InputData:    json.RawMessage(`{"energy":100}`),
				CO2Kg:        42.5,
				CO2Unit:      "kg",
			})
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(rec.ID, "em_"), "id %q should have em_ prefix", rec.ID)
			assert.True(t, rec.Timestamp.Equal(testNow))
			assert.Equal(t, "2025-03-15", rec.Date)

			all, err := st.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			if diff := cmp.Diff(rec, all[0]); diff != "" {
				t.Errorf("stored record mismatch (-added +stored):\n%s", diff)
			}
		})
	}
}

func TestStore_PreservesJSONPayloads(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			st, _ := b.open(t)
			ctx := context.Background()

			_, err := st.Add(ctx, models.EmissionRecord{
				ActivityType:     models.ActivityTravel,
				InputData:        json.RawMessage(`{"distance":12,"vehicle_type":"bus"}`),
				EmissionFactor:   json.RawMessage(`{"activity_id":"x","source":"EPA"}`),
				ConstituentGases: json.RawMessage(`{"co2":1.2}`),
				CO2Kg:            1.2,
			})
			require.NoError(t, err)
			_, err = st.Add(ctx, models.EmissionRecord{ActivityType: models.ActivityCustom, CO2Kg: 3})
			require.NoError(t, err)

			all, err := st.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)

			assert.JSONEq(t, `{"distance":12,"vehicle_type":"bus"}`, string(all[0].InputData))
			assert.JSONEq(t, `{"activity_id":"x","source":"EPA"}`, string(all[0].EmissionFactor))
			assert.JSONEq(t, `{"co2":1.2}`, string(all[0].ConstituentGases))
			assert.Nil(t, all[1].EmissionFactor)
			assert.Nil(t, all[1].InputData)
		})
	}
}

func TestStore_InsertionOrder(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			st, _ := b.open(t)
			ctx := context.Background()

			// Same timestamp for every record; order must still follow insertion
			var ids []string
			for i := 0; i < 5; i++ {
				rec, err := st.Add(ctx, models.EmissionRecord{ActivityType: models.ActivityFuel, CO2Kg: float64(i)})
				require.NoError(t, err)
				ids = append(ids, rec.ID)
			}

			all, err := st.All(ctx)
			require.NoError(t, err)

			var got []string
			for _, rec := range all {
				got = append(got, rec.ID)
			}
			if diff := cmp.Diff(ids, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_ByDateRange(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			st, clock := b.open(t)
			ctx := context.Background()

			for _, n := range []int{10, 5, 3, 0} {
				clock.daysAgo(n)
				_, err := st.Add(ctx, models.EmissionRecord{ActivityType: models.ActivityOther, CO2Kg: float64(n)})
				require.NoError(t, err)
			}

			got, err := st.ByDateRange(ctx, "2025-03-10", "2025-03-12")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "2025-03-10", got[0].Date)
			assert.Equal(t, "2025-03-12", got[1].Date)

			none, err := st.ByDateRange(ctx, "2024-01-01", "2024-12-31")
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			st, _ := b.open(t)
			ctx := context.Background()

			first, err := st.Add(ctx, models.EmissionRecord{CO2Kg: 1})
			require.NoError(t, err)
			second, err := st.Add(ctx, models.EmissionRecord{CO2Kg: 2})
			require.NoError(t, err)

			require.NoError(t, st.Delete(ctx, first.ID))
			assert.ErrorIs(t, st.Delete(ctx, first.ID), ErrNotFound)
			assert.ErrorIs(t, st.Delete(ctx, "em_missing"), ErrNotFound)

			all, err := st.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, second.ID, all[0].ID)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			st, _ := b.open(t)
			ctx := context.Background()

			for i := 0; i < 3; i++ {
				_, err := st.Add(ctx, models.EmissionRecord{CO2Kg: 1})
				require.NoError(t, err)
			}
			require.NoError(t, st.Clear(ctx))

			all, err := st.All(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	st := NewMemoryStore(nil)
	ctx := context.Background()

	_, err := st.Add(ctx, models.EmissionRecord{CO2Kg: 1})
	require.NoError(t, err)

	all, err := st.All(ctx)
	require.NoError(t, err)
	all[0].CO2Kg = 999

	again, err := st.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0].CO2Kg)
}

func TestMemoryStore_ConcurrentAdds(t *testing.T) {
	st := NewMemoryStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Add(ctx, models.EmissionRecord{CO2Kg: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)

	seen := make(map[string]bool)
	for _, rec := range all {
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}
