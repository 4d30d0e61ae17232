package api

import (
	"context"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
)

// AuthRequest carries the credentials for login and register calls.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

// AuthUser identifies the authenticated account.
type AuthUser struct {
	ID string `json:"id"`
}

// AuthResponse is the server's answer to a successful login or register.
type AuthResponse struct {
	User         AuthUser `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// Client is the server API surface the sync engine depends on.
//
// Implementations are stateless with respect to sessions: the base URL and
// credentials arrive as arguments on every call, so a single client can
// serve any number of accounts and servers.
type Client interface {
	// Login authenticates an existing account and registers the device.
	Login(ctx context.Context, baseURL string, req AuthRequest) (*AuthResponse, error)

	// Register creates a new account and logs it in.
	Register(ctx context.Context, baseURL string, req AuthRequest) (*AuthResponse, error)

	// Logout invalidates the refresh token on the server.
	Logout(ctx context.Context, baseURL, refreshToken string) error

	// Refresh exchanges a refresh token for a fresh access token.
	Refresh(ctx context.Context, baseURL, refreshToken string) (string, error)

	// PullChanges fetches changes made by other devices since the given
	// unix-millisecond cursor.
	PullChanges(ctx context.Context, baseURL, token string, since int64, deviceID string) ([]models.ChangeRecord, error)

	// PushChanges uploads local changes and returns any conflicts the
	// server resolved against them.
	PushChanges(ctx context.Context, baseURL, token string, changes []models.ChangeRecord, deviceID string) ([]models.SyncConflict, error)
}
