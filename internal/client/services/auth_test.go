package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/api"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
)

func TestLogin_PersistsFullSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.client.loginResp = &api.AuthResponse{
		User:         api.AuthUser{ID: "u-42"},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}

	require.NoError(t, f.orch.Login(ctx, "a@b.c", "secret", "http://server"))

	all, err := f.config.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-42", all[syncconfig.KeyUserID])
	assert.Equal(t, "access-1", all[syncconfig.KeyJWTToken])
	assert.Equal(t, "refresh-1", all[syncconfig.KeyRefreshToken])
	assert.Equal(t, "http://server", all[syncconfig.KeyServerURL])
	assert.Equal(t, "a@b.c", all[syncconfig.KeyUserEmail])
	assert.NotEmpty(t, all[syncconfig.KeyDeviceID])

	// the device id generated before the call is what went to the server
	assert.Equal(t, all[syncconfig.KeyDeviceID], f.client.lastLoginReq.DeviceID)
	assert.Equal(t, "a@b.c", f.client.lastLoginReq.Email)
	assert.Equal(t, "secret", f.client.lastLoginReq.Password)
}

func TestLogin_RunsImmediatePass(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "secret", "http://server"))

	assert.Equal(t, 1, f.client.pullCount())
	// empty journal, so the pass never calls push
	assert.Equal(t, 0, f.client.pushCalls)
}

func TestLogin_FailedImmediatePassDoesNotFailLogin(t *testing.T) {
	f := setup(t)
	f.client.pullErr = api.ErrUnavailable

	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "secret", "http://server"))

	loggedIn, err := f.config.IsLoggedIn(context.Background())
	require.NoError(t, err)
	assert.True(t, loggedIn)
	assert.Len(t, f.notifier.failed, 1)
}

func TestLogin_InvalidCredentials_ConfigUntouched(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.client.loginErr = &api.APIError{Status: http.StatusUnauthorized, Message: "invalid credentials"}

	err := f.orch.Login(ctx, "a@b.c", "wrong", "http://server")
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// device identity survives, session keys do not appear
	all, err := f.config.GetAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all[syncconfig.KeyDeviceID])
	assert.Len(t, all, 1)

	loggedIn, err := f.config.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestLogin_ServerUnreachable(t *testing.T) {
	f := setup(t)
	f.client.loginErr = api.ErrUnavailable

	err := f.orch.Login(context.Background(), "a@b.c", "pw", "http://server")
	require.ErrorIs(t, err, api.ErrUnavailable)

	loggedIn, err := f.config.IsLoggedIn(context.Background())
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestRegister_PersistsSessionWithoutImmediatePass(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.orch.Register(ctx, "new@b.c", "pw", "http://server"))

	loggedIn, err := f.config.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
	assert.Equal(t, 0, f.client.pullCount())
}

func TestLogout_ClearsWholeSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedSession(t)
	require.NoError(t, f.config.Set(ctx, syncconfig.KeyLastSyncTimestamp, "1755000000000"))

	require.NoError(t, f.orch.Logout(ctx))

	all, err := f.config.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Equal(t, 1, f.client.logoutCalls)
	assert.Equal(t, "rt-1", f.client.lastLogoutToken)
}

func TestLogout_ServerDown_StillClears(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedSession(t)
	f.client.logoutErr = api.ErrUnavailable

	require.NoError(t, f.orch.Logout(ctx))

	all, err := f.config.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLogout_WithoutSession(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.orch.Logout(context.Background()))
	assert.Equal(t, 0, f.client.logoutCalls)
}

func TestRefreshToken_OverwritesAccessTokenOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedSession(t)
	f.client.refreshedToken = "tok-2"

	require.True(t, f.orch.refreshToken(ctx))

	all, err := f.config.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", all[syncconfig.KeyJWTToken])
	assert.Equal(t, "rt-1", all[syncconfig.KeyRefreshToken])
}

func TestRefreshToken_NoSession(t *testing.T) {
	f := setup(t)

	assert.False(t, f.orch.refreshToken(context.Background()))
	assert.Equal(t, 0, f.client.refreshCalls)
}

func TestRefreshToken_ServerRejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seedSession(t)
	f.client.refreshErr = api.ErrForbidden

	assert.False(t, f.orch.refreshToken(ctx))

	// stored token untouched
	token, err := f.config.Get(ctx, syncconfig.KeyJWTToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}
