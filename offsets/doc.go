// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package offsets proxies the Gold Standard offset marketplace.

# Suggestions

	catalog, err := offsets.LoadCatalog(cfg.OffsetCatalog)
	client := offsets.NewClient(cfg.GoldStandardAPIURL, cfg.GoldStandardAPIKey, httpClient, catalog)
	result := client.Suggestions(ctx, 1250)

Suggestions never fails. Without an API key, or when the marketplace call
fails, it returns catalog projects with an estimated cost and Mock set.

# Catalog

The fallback catalog is YAML (price_per_ton, currency, projects,
recommendations). A copy is embedded in the binary. LoadCatalog reads an
operator-supplied file instead.

# Costs

	cost := client.CalculateCost(co2Kg, pricePerTon)

Cost is tonnes times price per ton. A non-positive price uses the catalog
price (15 USD by default).
*/
package offsets
