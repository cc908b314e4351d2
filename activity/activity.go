// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/footprint/climatiq"
	"github.com/danielhkuo/footprint/models"
)

var ErrUnknownActivity = errors.New("unknown activity type")

// SupportedTypes lists the activity types Build accepts, in display order
var SupportedTypes = []string{
	models.ActivityElectricity,
	models.ActivityTravel,
	models.ActivityFreight,
	models.ActivityProcurement,
	models.ActivityFuel,
	models.ActivityCustom,
}

// Activity IDs
const (
	ElectricityGridMix      = "electricity-supply_grid-source_supplier_mix"
	DefaultProcurementGoods = "consumer_goods-type_consumer_goods"
	fuelPrefix              = "fuel-type_"
)

// Accepted emission factor years
const (
	MinYear = 1900
	MaxYear = 2100
)

var vehicleActivities = map[string]string{
	"car":        "passenger_vehicle-vehicle_type_car-fuel_source_na-engine_size_na-vehicle_age_na-vehicle_weight_na",
	"bus":        "passenger_vehicle-vehicle_type_bus-fuel_source_na-engine_size_na-vehicle_age_na-vehicle_weight_na",
	"train":      "passenger_train-route_type_national_rail",
	"plane":      "passenger_flight-route_type_domestic-aircraft_type_na-distance_na-class_na-rf_included",
	"motorcycle": "passenger_vehicle-vehicle_type_motorbike-fuel_source_na-engine_size_na-vehicle_age_na-vehicle_weight_na",
}

var freightActivities = map[string]string{
	"truck": "freight_vehicle-vehicle_type_hgv_all_diesel-fuel_source_diesel",
	"ship":  "sea_freight-vessel_type_general_cargo",
	"plane": "air_freight",
	"train": "rail_freight",
}

// Factors for planes and trains are not broken down by region or year
var regionlessVehicles = map[string]bool{
	"plane": true,
	"train": true,
}

// VehicleActivityID maps a vehicle type to its activity ID, defaulting to car
func VehicleActivityID(vehicleType string) string {
	if id, ok := vehicleActivities[vehicleType]; ok {
		return id
	}
	return vehicleActivities["car"]
}

// FreightActivityID maps a transport mode to its activity ID, defaulting to truck
func FreightActivityID(mode string) string {
	if id, ok := freightActivities[mode]; ok {
		return id
	}
	return freightActivities["truck"]
}

// Build translates an activity type and its parameters (a JSON object) into
// a Climatiq estimate request. Custom activities are passed through verbatim.
func Build(activityType string, params json.RawMessage) (climatiq.EstimateRequest, error) {
	f, err := parseFields(params)
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}

	switch activityType {
	case models.ActivityElectricity:
		return electricity(f)
	case models.ActivityTravel:
		return travel(f)
	case models.ActivityFreight:
		return freight(f)
	case models.ActivityProcurement:
		return procurement(f)
	case models.ActivityFuel:
		return fuel(f)
	case models.ActivityCustom:
		if len(f) == 0 {
			params = json.RawMessage(`{}`)
		}
		return climatiq.EstimateRequest{Raw: params}, nil
	}

	return climatiq.EstimateRequest{}, fmt.Errorf("%w: %s. Supported types: %s",
		ErrUnknownActivity, activityType, strings.Join(SupportedTypes, ", "))
}

func electricity(f fields) (climatiq.EstimateRequest, error) {
	energy, err := f.number("energy")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	unit, err := f.str("energy_unit", "kWh")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	region, err := f.str("region", "US")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	year, err := f.integer("year", 2021, MinYear, MaxYear)
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}

	return climatiq.EstimateRequest{
		EmissionFactor: climatiq.EmissionFactor{
			ActivityID:  ElectricityGridMix,
			DataVersion: climatiq.DataVersion,
			Region:      region,
			Year:        year,
		},
		Parameters: map[string]interface{}{
			"energy":      energy,
			"energy_unit": unit,
		},
	}, nil
}

func travel(f fields) (climatiq.EstimateRequest, error) {
	distance, err := f.number("distance")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	unit, err := f.str("distance_unit", "km")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	vehicle, err := f.str("vehicle_type", "")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	region, err := f.str("region", "")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	year, err := f.integer("year", 2024, MinYear, MaxYear)
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}

	factor := climatiq.EmissionFactor{
		ActivityID:  VehicleActivityID(vehicle),
		DataVersion: climatiq.DataVersion,
	}
	if !regionlessVehicles[vehicle] {
		factor.Region = region
		factor.Year = year
	}

	return climatiq.EstimateRequest{
		EmissionFactor: factor,
		Parameters: map[string]interface{}{
			"distance":      distance,
			"distance_unit": unit,
		},
	}, nil
}

func freight(f fields) (climatiq.EstimateRequest, error) {
	weight, err := f.number("weight")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	weightUnit, err := f.str("weight_unit", "kg")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	distance, err := f.number("distance")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	distanceUnit, err := f.str("distance_unit", "km")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	mode, err := f.str("transport_mode", "truck")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}

	return climatiq.EstimateRequest{
		EmissionFactor: climatiq.EmissionFactor{
			ActivityID:  FreightActivityID(mode),
			DataVersion: climatiq.DataVersion,
		},
		Parameters: map[string]interface{}{
			"weight":        weight,
			"weight_unit":   weightUnit,
			"distance":      distance,
			"distance_unit": distanceUnit,
		},
	}, nil
}

func procurement(f fields) (climatiq.EstimateRequest, error) {
	money, err := f.number("money")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	unit, err := f.str("money_unit", "usd")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	category, err := f.str("category", DefaultProcurementGoods)
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	region, err := f.str("region", "US")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}

	return climatiq.EstimateRequest{
		EmissionFactor: climatiq.EmissionFactor{
			ActivityID:  category,
			DataVersion: climatiq.DataVersion,
			Region:      region,
		},
		Parameters: map[string]interface{}{
			"money":      money,
			"money_unit": unit,
		},
	}, nil
}

func fuel(f fields) (climatiq.EstimateRequest, error) {
	volume, err := f.number("volume")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	unit, err := f.str("volume_unit", "l")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}
	fuelType, err := f.str("fuel_type", "petrol")
	if err != nil {
		return climatiq.EstimateRequest{}, err
	}

	return climatiq.EstimateRequest{
		EmissionFactor: climatiq.EmissionFactor{
			ActivityID:  fuelPrefix + fuelType,
			DataVersion: climatiq.DataVersion,
		},
		Parameters: map[string]interface{}{
			"volume":      volume,
			"volume_unit": unit,
		},
	}, nil
}
