// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - EmissionRecord: one calculated activity (id, timestamp, date, activity_type,
    input_data, co2_kg, co2_unit, emission_factor, constituent_gases)
  - ActivityTotal: CO2e summed per activity type
  - DailyAggregate, WeeklyAggregate: bucketed totals
  - Statistics: overall totals and averages
  - OffsetProject, OffsetSuggestions, OffsetCost: offset marketplace data

# Request Types

  - BatchRequest: emissions (array of calculate bodies)
  - OffsetCostRequest: co2_kg, price_per_ton

Calculate bodies are free-form ({"activity_type": ..., ...params}) and are
decoded by the handlers package.

# Response Types

Every success body carries "success": true:

  - CalculateResponse: record_id and calculation data
  - BatchResponse: per-item results and totals
  - HistoryResponse, DailyResponse, WeeklyResponse, TodayResponse
  - StatisticsResponse, DataResponse, MessageResponse
  - OffsetTotalResponse: emissions summary plus offset suggestions
  - ErrorResponse: success=false with a message or an upstream error body

# Constants

Activity types:

	ActivityElectricity = "electricity"
	ActivityTravel      = "travel"
	ActivityFreight     = "freight"
	ActivityProcurement = "procurement"
	ActivityFuel        = "fuel"
	ActivityCustom      = "custom"
	ActivityOther       = "other"

Database types:

	DatabaseMemory   = "memory"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
*/
package models
