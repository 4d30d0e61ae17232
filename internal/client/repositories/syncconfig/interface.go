package syncconfig

import (
	"context"
)

// Keys used by the sync engine. At most one value exists per key.
const (
	KeyUserID            = "user_id"
	KeyDeviceID          = "device_id"
	KeyJWTToken          = "jwt_token"
	KeyRefreshToken      = "refresh_token"
	KeyServerURL         = "server_url"
	KeyUserEmail         = "user_email"
	KeyLastSyncTimestamp = "last_sync_timestamp"
)

// Repository is the durable key/value store for device identity and session
// credentials. Writes are immediately durable; no value validation happens
// here. Storage errors always propagate to the caller.
type Repository interface {
	// Get returns the value for key, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// SetMany stores all pairs in a single transaction, so that a crash
	// between writes never leaves a partial session.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// GetAll returns every stored pair.
	GetAll(ctx context.Context) (map[string]string, error)

	// Clear removes all keys (wholesale logout).
	Clear(ctx context.Context) error

	// IsLoggedIn reports whether both user_id and jwt_token are present.
	IsLoggedIn(ctx context.Context) (bool, error)
}
