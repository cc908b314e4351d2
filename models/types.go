package models

import (
	"encoding/json"
	"time"
)

// Activity type constants
const (
	ActivityElectricity = "electricity"
	ActivityTravel      = "travel"
	ActivityFreight     = "freight"
	ActivityProcurement = "procurement"
	ActivityFuel        = "fuel"
	ActivityCustom      = "custom"

	// ActivityOther groups records stored without an activity type
	ActivityOther = "other"
)

// Database type constants
const (
	DatabaseMemory   = "memory"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// Domain types

type EmissionRecord struct {
	ID               string          `json:"id"`
	Timestamp        time.Time       `json:"timestamp"`
	Date             string          `json:"date"` // YYYY-MM-DD (UTC)
	ActivityType     string          `json:"activity_type"`
	InputData        json.RawMessage `json:"input_data,omitempty"`
	CO2Kg            float64         `json:"co2_kg"`
	CO2Unit          string          `json:"co2_unit,omitempty"`
	EmissionFactor   json.RawMessage `json:"emission_factor,omitempty"`
	ConstituentGases json.RawMessage `json:"constituent_gases,omitempty"`
}

type ActivityTotal struct {
	ActivityType string  `json:"activity_type"`
	TotalCO2Kg   float64 `json:"total_co2_kg"`
	Count        int     `json:"count"`
}

type DailyAggregate struct {
	Date       string             `json:"date"`
	TotalCO2Kg float64            `json:"total_co2_kg"`
	Count      int                `json:"count"`
	Activities map[string]float64 `json:"activities"`
}

type WeeklyAggregate struct {
	WeekStart  string  `json:"week_start"`
	WeekEnd    string  `json:"week_end"`
	TotalCO2Kg float64 `json:"total_co2_kg"`
	Count      int     `json:"count"`
}

// Statistics keeps the fixed-decimal strings the web client renders directly
type Statistics struct {
	TotalEmissionsKg     float64         `json:"total_emissions_kg"`
	TotalEmissionsTons   string          `json:"total_emissions_tons"`
	TotalActivities      int             `json:"total_activities"`
	AveragePerActivityKg string          `json:"average_per_activity_kg"`
	DailyAverageKg       string          `json:"daily_average_kg"`
	ByActivity           []ActivityTotal `json:"by_activity"`
}

// Offset types

type OffsetProject struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Type          string   `json:"type" yaml:"type"`
	Location      string   `json:"location" yaml:"location"`
	Description   string   `json:"description" yaml:"description"`
	PricePerTon   float64  `json:"price_per_ton" yaml:"price_per_ton"`
	Certification string   `json:"certification" yaml:"certification"`
	SDGGoals      []string `json:"sdg_goals" yaml:"sdg_goals"`
	URL           string   `json:"url" yaml:"url"`
}

type EstimatedCost struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type OffsetSuggestions struct {
	TotalCO2Kg          float64         `json:"total_co2_kg"`
	TotalCO2Tons        string          `json:"total_co2_tons"`
	EstimatedOffsetCost EstimatedCost   `json:"estimated_offset_cost"`
	SuggestedProjects   []OffsetProject `json:"suggested_projects"`
	Recommendations     []string        `json:"recommendations"`
}

// SuggestionsResult carries either upstream JSON or fallback OffsetSuggestions in Data
type SuggestionsResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Mock    bool        `json:"mock,omitempty"`
}

type OffsetCost struct {
	CO2Kg       float64 `json:"co2_kg"`
	CO2Tons     float64 `json:"co2_tons"`
	PricePerTon float64 `json:"price_per_ton"`
	TotalCost   float64 `json:"total_cost"`
	Currency    string  `json:"currency"`
}

// Request types

type BatchRequest struct {
	Emissions []json.RawMessage `json:"emissions"`
}

type OffsetCostRequest struct {
	CO2Kg       json.RawMessage `json:"co2_kg"`
	PricePerTon json.RawMessage `json:"price_per_ton"`
}

// Response types

type CalculationData struct {
	CO2eKg                float64         `json:"co2e_kg"`
	CO2eUnit              string          `json:"co2e_unit"`
	CO2eCalculationMethod string          `json:"co2e_calculation_method,omitempty"`
	EmissionFactor        json.RawMessage `json:"emission_factor,omitempty"`
	ConstituentGases      json.RawMessage `json:"constituent_gases,omitempty"`
	ActivityData          json.RawMessage `json:"activity_data,omitempty"`
}

type CalculateResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	RecordID string          `json:"record_id"`
	Data     CalculationData `json:"data"`
}

// BatchItemResult carries record_id and co2e_kg on success (co2e_kg even when 0)
// and error on failure
type BatchItemResult struct {
	Success  bool        `json:"success"`
	RecordID string      `json:"record_id,omitempty"`
	CO2eKg   *float64    `json:"co2e_kg,omitempty"`
	Error    interface{} `json:"error,omitempty"`
}

type BatchResponse struct {
	Success      bool              `json:"success"`
	TotalRecords int               `json:"total_records"`
	Successful   int               `json:"successful"`
	Failed       int               `json:"failed"`
	TotalCO2eKg  float64           `json:"total_co2e_kg"`
	Results      []BatchItemResult `json:"results"`
}

type HistoryResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []EmissionRecord `json:"data"`
}

type DailyResponse struct {
	Success bool             `json:"success"`
	Period  string           `json:"period"`
	Data    []DailyAggregate `json:"data"`
}

type WeeklyResponse struct {
	Success bool              `json:"success"`
	Period  string            `json:"period"`
	Data    []WeeklyAggregate `json:"data"`
}

type StatisticsResponse struct {
	Success bool       `json:"success"`
	Data    Statistics `json:"data"`
}

type TodayResponse struct {
	Success    bool             `json:"success"`
	Date       string           `json:"date"`
	Count      int              `json:"count"`
	TotalCO2Kg float64          `json:"total_co2_kg"`
	Data       []EmissionRecord `json:"data"`
}

type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type EmissionsSummary struct {
	TotalCO2Kg      float64         `json:"total_co2_kg"`
	TotalCO2Tons    string          `json:"total_co2_tons"`
	TotalActivities int             `json:"total_activities"`
	ByActivity      []ActivityTotal `json:"by_activity"`
}

type OffsetTotalResponse struct {
	Success           bool               `json:"success"`
	Message           string             `json:"message,omitempty"`
	EmissionsSummary  EmissionsSummary   `json:"emissions_summary"`
	OffsetSuggestions interface{}        `json:"offset_suggestions,omitempty"`
	Data              *OffsetSuggestions `json:"data,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Error response

// ErrorDetail is the error body for unmatched routes
type ErrorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorResponse.Error is a message string, an ErrorDetail, or an upstream JSON error body
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
}
