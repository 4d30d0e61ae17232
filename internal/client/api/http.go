package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/logging"
)

// defaultTimeout bounds every request when the caller passes no timeout.
const defaultTimeout = 30 * time.Second

// HTTPClient implements Client over plain JSON HTTP.
type HTTPClient struct {
	client *http.Client
	log    logging.Logger
}

// NewHTTPClient returns an HTTPClient with connection pooling tuned for the
// periodic request pattern of a sync loop. A non-positive timeout falls back
// to the default.
func NewHTTPClient(log logging.Logger, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log: log,
	}
}

// Login authenticates an existing account. POST /api/auth/login.
func (h *HTTPClient) Login(ctx context.Context, baseURL string, req AuthRequest) (*AuthResponse, error) {
	return h.authCall(ctx, baseURL+"/api/auth/login", req)
}

// Register creates a new account. POST /api/auth/register.
func (h *HTTPClient) Register(ctx context.Context, baseURL string, req AuthRequest) (*AuthResponse, error) {
	return h.authCall(ctx, baseURL+"/api/auth/register", req)
}

func (h *HTTPClient) authCall(ctx context.Context, url string, req AuthRequest) (*AuthResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, url, "", req)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := h.parseResponse(ctx, resp, &authResp); err != nil {
		return nil, err
	}
	return &authResp, nil
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout invalidates the refresh token on the server. POST /api/auth/logout.
func (h *HTTPClient) Logout(ctx context.Context, baseURL, refreshToken string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, baseURL+"/api/auth/logout", "", logoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	return h.parseResponse(ctx, resp, nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Refresh exchanges a refresh token for a new access token.
// POST /api/auth/refresh.
func (h *HTTPClient) Refresh(ctx context.Context, baseURL, refreshToken string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, baseURL+"/api/auth/refresh", "", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}

	var refreshResp refreshResponse
	if err := h.parseResponse(ctx, resp, &refreshResp); err != nil {
		return "", err
	}
	return refreshResp.AccessToken, nil
}

type pullResponse struct {
	Changes []models.ChangeRecord `json:"changes"`
}

// PullChanges fetches changes from other devices.
// GET /api/sync/changes?since=<ms>&deviceId=<id>.
func (h *HTTPClient) PullChanges(ctx context.Context, baseURL, token string, since int64, deviceID string) ([]models.ChangeRecord, error) {
	query := url.Values{}
	query.Set("since", strconv.FormatInt(since, 10))
	query.Set("deviceId", deviceID)

	resp, err := h.doRequest(ctx, http.MethodGet, baseURL+"/api/sync/changes?"+query.Encode(), token, nil)
	if err != nil {
		return nil, err
	}

	var pullResp pullResponse
	if err := h.parseResponse(ctx, resp, &pullResp); err != nil {
		return nil, err
	}
	return pullResp.Changes, nil
}

type pushRequest struct {
	Changes  []models.ChangeRecord `json:"changes"`
	DeviceID string                `json:"deviceId"`
}

type pushResponse struct {
	Conflicts []models.SyncConflict `json:"conflicts"`
}

// PushChanges uploads local changes. POST /api/sync/push. A response without
// a conflicts field means every change was accepted as-is.
func (h *HTTPClient) PushChanges(ctx context.Context, baseURL, token string, changes []models.ChangeRecord, deviceID string) ([]models.SyncConflict, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, baseURL+"/api/sync/push", token, pushRequest{Changes: changes, DeviceID: deviceID})
	if err != nil {
		return nil, err
	}

	var pushResp pushResponse
	if err := h.parseResponse(ctx, resp, &pushResp); err != nil {
		return nil, err
	}
	return pushResp.Conflicts, nil
}

func (h *HTTPClient) doRequest(ctx context.Context, method, url, token string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug(ctx, "sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

func (h *HTTPClient) parseResponse(ctx context.Context, resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	h.log.Debug(ctx, "received response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(body)
		if resp.StatusCode == http.StatusForbidden {
			if msg == "" {
				msg = "access token rejected"
			}
			return fmt.Errorf("%w: %s", ErrForbidden, msg)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error body. Servers
// use either {"error": ...} or {"message": ...}.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
