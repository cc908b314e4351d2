// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package climatiq is a thin client for the Climatiq emission-factor API.

	client := climatiq.NewClient(cfg.ClimatiqAPIURL, cfg.ClimatiqAPIKey, httpClient)
	est, err := client.Estimate(ctx, req)

Estimate posts to /data/v1/estimate and Search proxies /data/v1/search.
Requests carry the API key as a bearer token. Timeouts come from the
supplied http.Client; there are no retries.

Non-2xx replies become *APIError with the upstream JSON body. ErrorBody
turns any error into JSON suitable for relaying to API clients.
*/
package climatiq
