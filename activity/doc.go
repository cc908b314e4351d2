// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package activity maps user-facing activity categories onto Climatiq
emission factors.

	req, err := activity.Build("travel", json.RawMessage(`{"distance": 120, "vehicle_type": "train"}`))

# Activity Types

	electricity  energy, energy_unit (kWh), region (US), year (2021)
	travel       distance, distance_unit (km), vehicle_type, region, year (2024)
	freight      weight, weight_unit (kg), distance, distance_unit (km), transport_mode (truck)
	procurement  money, money_unit (usd), category, region (US)
	fuel         volume, volume_unit (l), fuel_type (petrol)
	custom       the full estimate body, sent as-is

Defaults are shown in parentheses. Plane and train journeys drop region and
year from the emission factor. Unknown vehicle types use the car factor and
unknown transport modes use the truck factor.

# Errors

Numeric parameters accept numbers or numeric strings. Years must fall
between MinYear and MaxYear. A missing or invalid
required parameter yields *ValidationError; an unsupported type yields an
error wrapping ErrUnknownActivity.
*/
package activity
