// Package api implements the HTTP client for the sync server.
//
// # Overview
//
// The package defines a Client interface mirroring the server's JSON API
// (auth lifecycle plus pull/push of change batches) and an HTTPClient
// implementation on net/http. The client is stateless: base URL and tokens
// are passed per call, which keeps the session storage concern in the
// services layer and makes the implementation trivially safe for concurrent
// use.
//
// # Error Mapping
//
// Failures map onto three shapes the sync engine reacts to differently:
//
//   - ErrUnavailable — no HTTP response was obtained (network down, server
//     unreachable). The engine backs off and retries later.
//   - ErrForbidden — HTTP 403, the access token was rejected. The engine
//     refreshes the token and retries once.
//   - *APIError — any other non-2xx status. Terminal for the call.
//
// Key Types
//
//   - type Client      — interface consumed by internal/client/services
//   - type HTTPClient  — net/http implementation
//   - func TokenExpiry — unverified JWT exp introspection for status output
//
// Typical Usage
//
//	client := api.NewHTTPClient(log)
//	resp, err := client.Login(ctx, baseURL, api.AuthRequest{Email: e, Password: p, DeviceID: d})
//	changes, err := client.PullChanges(ctx, baseURL, token, since, deviceID)
package api
