// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package activity

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/footprint/climatiq"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name         string
		activityType string
		params       string
		want         climatiq.EstimateRequest
	}{
		{
			name:         "electricity defaults",
			activityType: "electricity",
			params:       `{"energy": 100}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  ElectricityGridMix,
					DataVersion: "^27",
					Region:      "US",
					Year:        2021,
				},
				Parameters: map[string]interface{}{"energy": 100.0, "energy_unit": "kWh"},
			},
		},
		{
			name:         "electricity with region, year and string energy",
			activityType: "electricity",
			params:       `{"energy": "250.5", "energy_unit": "MWh", "region": "GB", "year": 2023}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  ElectricityGridMix,
					DataVersion: "^27",
					Region:      "GB",
					Year:        2023,
				},
				Parameters: map[string]interface{}{"energy": 250.5, "energy_unit": "MWh"},
			},
		},
		{
			name:         "travel by car defaults",
			activityType: "travel",
			params:       `{"distance": 42}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  vehicleActivities["car"],
					DataVersion: "^27",
					Year:        2024,
				},
				Parameters: map[string]interface{}{"distance": 42.0, "distance_unit": "km"},
			},
		},
		{
			name:         "travel by bus with region",
			activityType: "travel",
			params:       `{"distance": 10, "distance_unit": "mi", "vehicle_type": "bus", "region": "US"}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  vehicleActivities["bus"],
					DataVersion: "^27",
					Region:      "US",
					Year:        2024,
				},
				Parameters: map[string]interface{}{"distance": 10.0, "distance_unit": "mi"},
			},
		},
		{
			name:         "travel by plane drops region and year",
			activityType: "travel",
			params:       `{"distance": 800, "vehicle_type": "plane", "region": "US", "year": 2020}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  vehicleActivities["plane"],
					DataVersion: "^27",
				},
				Parameters: map[string]interface{}{"distance": 800.0, "distance_unit": "km"},
			},
		},
		{
			name:         "travel with unknown vehicle falls back to car",
			activityType: "travel",
			params:       `{"distance": 5, "vehicle_type": "rocket"}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  vehicleActivities["car"],
					DataVersion: "^27",
					Year:        2024,
				},
				Parameters: map[string]interface{}{"distance": 5.0, "distance_unit": "km"},
			},
		},
		{
			name:         "freight by ship",
			activityType: "freight",
			params:       `{"weight": 1000, "weight_unit": "t", "distance": 5000, "transport_mode": "ship"}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  freightActivities["ship"],
					DataVersion: "^27",
				},
				Parameters: map[string]interface{}{
					"weight": 1000.0, "weight_unit": "t",
					"distance": 5000.0, "distance_unit": "km",
				},
			},
		},
		{
			name:         "procurement defaults",
			activityType: "procurement",
			params:       `{"money": 99.99}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  DefaultProcurementGoods,
					DataVersion: "^27",
					Region:      "US",
				},
				Parameters: map[string]interface{}{"money": 99.99, "money_unit": "usd"},
			},
		},
		{
			name:         "fuel diesel",
			activityType: "fuel",
			params:       `{"volume": 40, "fuel_type": "diesel"}`,
			want: climatiq.EstimateRequest{
				EmissionFactor: climatiq.EmissionFactor{
					ActivityID:  "fuel-type_diesel",
					DataVersion: "^27",
				},
				Parameters: map[string]interface{}{"volume": 40.0, "volume_unit": "l"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.activityType, json.RawMessage(tt.params))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_Custom(t *testing.T) {
	body := `{"emission_factor":{"activity_id":"x","data_version":"^27"},"parameters":{"weight":1}}`

	req, err := Build("custom", json.RawMessage(body))
	require.NoError(t, err)

	encoded, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(encoded))

	empty, err := Build("custom", nil)
	require.NoError(t, err)
	encoded, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(encoded))
}

func TestBuild_EncodesEstimateBody(t *testing.T) {
	req, err := Build("fuel", json.RawMessage(`{"volume": 10}`))
	require.NoError(t, err)

	encoded, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"emission_factor": {"activity_id": "fuel-type_petrol", "data_version": "^27"},
		"parameters": {"volume": 10, "volume_unit": "l"}
	}`, string(encoded))
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := Build("teleport", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownActivity))
	assert.Contains(t, err.Error(), "teleport")
	assert.Contains(t, err.Error(), strings.Join(SupportedTypes, ", "))
}

func TestBuild_ValidationErrors(t *testing.T) {
	tests := []struct {
		name         string
		activityType string
		params       string
		field        string
		message      string
	}{
		{"missing energy", "electricity", `{}`, "energy", "energy is required"},
		{"null energy", "electricity", `{"energy": null}`, "energy", "energy is required"},
		{"non-numeric energy", "electricity", `{"energy": "lots"}`, "energy", "energy must be a number"},
		{"boolean distance", "travel", `{"distance": true}`, "distance", "distance must be a number"},
		{"missing freight distance", "freight", `{"weight": 5}`, "distance", "distance is required"},
		{"fractional year", "electricity", `{"energy": 1, "year": 2021.5}`, "year", "year must be a whole number"},
		{"huge year", "electricity", `{"energy": 1, "year": 1e30}`, "year", "year must be between 1900 and 2100"},
		{"year before range", "travel", `{"distance": 1, "year": 1899}`, "year", "year must be between 1900 and 2100"},
		{"year after range", "electricity", `{"energy": 1, "year": "2101"}`, "year", "year must be between 1900 and 2100"},
		{"numeric unit", "fuel", `{"volume": 1, "volume_unit": 5}`, "volume_unit", "volume_unit must be a string"},
		{"not an object", "procurement", `[1, 2]`, "", "activity parameters must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.activityType, json.RawMessage(tt.params))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{`12.5`, 12.5, false},
		{`"12.5"`, 12.5, false},
		{`" 7 "`, 7, false},
		{`-3`, -3, false},
		{`"abc"`, 0, true},
		{`""`, 0, true},
		{`"NaN"`, 0, true},
		{`"Inf"`, 0, true},
		{`true`, 0, true},
		{`null`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseNumber(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActivityIDFallbacks(t *testing.T) {
	assert.Equal(t, vehicleActivities["car"], VehicleActivityID(""))
	assert.Equal(t, vehicleActivities["train"], VehicleActivityID("train"))
	assert.Equal(t, freightActivities["truck"], FreightActivityID("hovercraft"))
	assert.Equal(t, freightActivities["plane"], FreightActivityID("plane"))
}
