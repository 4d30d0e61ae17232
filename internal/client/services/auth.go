package services

import (
	"context"
	"fmt"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/api"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
)

// Login authenticates against the server and brings this device online: on
// success the full session is persisted in one transaction, an immediate
// sync pass runs, and the periodic loop starts. A failed immediate pass is
// reported through the notifier but does not fail the login. On any auth or
// network error the config store is left untouched.
func (o *Orchestrator) Login(ctx context.Context, email, password, serverURL string) error {
	deviceID, err := o.EnsureDeviceID(ctx)
	if err != nil {
		return err
	}

	resp, err := o.client.Login(ctx, serverURL, api.AuthRequest{
		Email:    email,
		Password: password,
		DeviceID: deviceID,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := o.saveSession(ctx, resp, serverURL, email); err != nil {
		return err
	}
	o.log.Info(ctx, "logged in", "user_id", resp.User.ID, "device_id", deviceID)

	if err := o.ManualSync(ctx); err != nil {
		o.log.Warn(ctx, "initial sync after login failed", "error", err)
	}
	o.StartLoop(ctx)
	return nil
}

// Register creates a new account and logs this device into it. The periodic
// loop starts on success; there is no immediate pass because a fresh
// account has nothing to pull.
func (o *Orchestrator) Register(ctx context.Context, email, password, serverURL string) error {
	deviceID, err := o.EnsureDeviceID(ctx)
	if err != nil {
		return err
	}

	resp, err := o.client.Register(ctx, serverURL, api.AuthRequest{
		Email:    email,
		Password: password,
		DeviceID: deviceID,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := o.saveSession(ctx, resp, serverURL, email); err != nil {
		return err
	}
	o.log.Info(ctx, "registered", "user_id", resp.User.ID, "device_id", deviceID)

	o.StartLoop(ctx)
	return nil
}

// saveSession persists the whole session in a single transaction. A crash
// mid-login therefore leaves either no session or a complete one.
func (o *Orchestrator) saveSession(ctx context.Context, resp *api.AuthResponse, serverURL, email string) error {
	err := o.config.SetMany(ctx, map[string]string{
		syncconfig.KeyUserID:       resp.User.ID,
		syncconfig.KeyJWTToken:     resp.AccessToken,
		syncconfig.KeyRefreshToken: resp.RefreshToken,
		syncconfig.KeyServerURL:    serverURL,
		syncconfig.KeyUserEmail:    email,
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout stops the loop, tells the server to revoke the refresh token, and
// wipes the local session. The server call is best effort: an unreachable
// server must never trap the user in a logged-in state.
func (o *Orchestrator) Logout(ctx context.Context) error {
	o.StopLoop()

	serverURL, err := o.config.Get(ctx, syncconfig.KeyServerURL)
	if err != nil {
		o.log.Warn(ctx, "failed to read server url for logout", "error", err)
	}
	refreshToken, err := o.config.Get(ctx, syncconfig.KeyRefreshToken)
	if err != nil {
		o.log.Warn(ctx, "failed to read refresh token for logout", "error", err)
	}

	if serverURL != "" && refreshToken != "" {
		if err := o.client.Logout(ctx, serverURL, refreshToken); err != nil {
			o.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}

	if err := o.config.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	o.resetBackoff()
	o.setLastErr(nil)
	o.log.Info(ctx, "logged out")
	return nil
}

// refreshToken exchanges the stored refresh token for a new access token
// and persists it. The refresh token itself is not rotated. Returns false
// on any failure, leaving the stored session unchanged.
func (o *Orchestrator) refreshToken(ctx context.Context) bool {
	serverURL, err := o.config.Get(ctx, syncconfig.KeyServerURL)
	if err != nil || serverURL == "" {
		return false
	}
	refreshToken, err := o.config.Get(ctx, syncconfig.KeyRefreshToken)
	if err != nil || refreshToken == "" {
		return false
	}

	token, err := o.client.Refresh(ctx, serverURL, refreshToken)
	if err != nil {
		o.log.Warn(ctx, "token refresh failed", "error", err)
		return false
	}

	if err := o.config.Set(ctx, syncconfig.KeyJWTToken, token); err != nil {
		o.log.Error(ctx, "failed to store refreshed token", "error", err)
		return false
	}

	o.log.Debug(ctx, "access token refreshed")
	return true
}
