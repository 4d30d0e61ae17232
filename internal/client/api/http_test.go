package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/logging"
)

func testClient() *HTTPClient {
	return NewHTTPClient(logging.NewNop(), 0)
}

func TestLogin_Success(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])
		assert.Equal(t, "secret", body["password"])
		assert.Equal(t, "dev-1", body["deviceId"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u-42"},"accessToken":"at","refreshToken":"rt"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := testClient().Login(context.Background(), srv.URL, AuthRequest{
		Email: "a@b.c", Password: "secret", DeviceID: "dev-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-42", resp.User.ID)
	assert.Equal(t, "at", resp.AccessToken)
	assert.Equal(t, "rt", resp.RefreshToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	_, err := testClient().Login(context.Background(), srv.URL, AuthRequest{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestRegister_Accepts201(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"user":{"id":"u-1"},"accessToken":"at","refreshToken":"rt"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := testClient().Register(context.Background(), srv.URL, AuthRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.User.ID)
}

func TestLogout_SendsRefreshToken(t *testing.T) {
	var got string
	router := chi.NewRouter()
	router.Post("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = body["refreshToken"]
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	require.NoError(t, testClient().Logout(context.Background(), srv.URL, "rt-1"))
	assert.Equal(t, "rt-1", got)
}

func TestRefresh_Success(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accessToken":"fresh"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	token, err := testClient().Refresh(context.Background(), srv.URL, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestRefresh_RevokedToken_Forbidden(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"refresh token revoked"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	_, err := testClient().Refresh(context.Background(), srv.URL, "rt-1")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPullChanges_SendsCursorDeviceAndBearer(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/sync/changes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1755000000000", r.URL.Query().Get("since"))
		assert.Equal(t, "dev-1", r.URL.Query().Get("deviceId"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"changes":[
			{"entity_type":"note","entity_id":"n1","operation":"update",
			 "data":{"id":"n1","title":"t"},"timestamp":1755000000500,"device_id":"dev-2"}
		]}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	changes, err := testClient().PullChanges(context.Background(), srv.URL, "tok", 1755000000000, "dev-1")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "n1", changes[0].EntityID)
	assert.Equal(t, models.OperationUpdate, changes[0].Operation)
	assert.Equal(t, "dev-2", changes[0].DeviceID)
	assert.Equal(t, int64(1755000000500), changes[0].Timestamp)
}

func TestPullChanges_EmptyResult(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/sync/changes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"changes":[]}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	changes, err := testClient().PullChanges(context.Background(), srv.URL, "tok", 0, "dev-1")
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPullChanges_ExpiredToken_Forbidden(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/sync/changes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	_, err := testClient().PullChanges(context.Background(), srv.URL, "stale", 0, "dev-1")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPushChanges_RoundTripsConflicts(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/sync/push", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Changes  []models.ChangeRecord `json:"changes"`
			DeviceID string                `json:"deviceId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dev-1", body.DeviceID)
		require.Len(t, body.Changes, 1)
		assert.Equal(t, "n1", body.Changes[0].EntityID)

		_, _ = w.Write([]byte(`{"conflicts":[
			{"entity_type":"note","entity_id":"n1",
			 "localTimestamp":1000,"remoteTimestamp":2000,
			 "localData":{"id":"n1"},"remoteData":{"id":"n1"}}
		]}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	changes := []models.ChangeRecord{{
		EntityType: models.EntityTypeNote,
		EntityID:   "n1",
		Operation:  models.OperationUpdate,
		Data:       json.RawMessage(`{"id":"n1"}`),
		Timestamp:  1000,
	}}

	conflicts, err := testClient().PushChanges(context.Background(), srv.URL, "tok", changes, "dev-1")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "n1", conflicts[0].EntityID)
	assert.Equal(t, int64(1000), conflicts[0].LocalTimestamp)
	assert.Equal(t, int64(2000), conflicts[0].RemoteTimestamp)
}

func TestPushChanges_NoConflictsField(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/sync/push", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	conflicts, err := testClient().PushChanges(context.Background(), srv.URL, "tok", nil, "dev-1")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestUnreachableServer_ErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	url := srv.URL
	srv.Close()

	_, err := testClient().Login(context.Background(), url, AuthRequest{Email: "a@b.c", Password: "pw"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestServerError_MessageKeyFallback(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/sync/push", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database exploded"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	_, err := testClient().PushChanges(context.Background(), srv.URL, "tok", nil, "dev-1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database exploded", apiErr.Message)
	assert.False(t, errors.Is(err, ErrForbidden))
}
