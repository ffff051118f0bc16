package http

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
	"journal_server/internal/usecase"
)

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, username, password string) (domain.Session, error) {
	if username != "trader" || password != "hunter2" {
		return domain.Session{}, domain.ErrUnauthorized
	}
	return domain.Session{Token: "tok-1", UserID: "trader", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (stubAuth) Logout(_ context.Context, _ string) error { return nil }

func (stubAuth) Resolve(_ context.Context, token string) (string, error) {
	if token != "tok-1" {
		return "", domain.ErrUnauthorized
	}
	return "trader", nil
}

type stubPresets struct {
	PresetService
}

func (stubPresets) GetByID(_ context.Context, _, presetID string) (domain.RiskPreset, error) {
	if presetID != "p-1" {
		return domain.RiskPreset{}, domain.ErrNotFound
	}
	return domain.RiskPreset{ID: "p-1", UserID: "trader", Name: "Conservative"}, nil
}

func (stubPresets) Delete(_ context.Context, _, _ string) error {
	return fmt.Errorf("%w: cannot delete default preset, set another preset as default first", domain.ErrConflict)
}

func (stubPresets) Create(_ context.Context, _ string, _ usecase.RiskPresetInput) (domain.RiskPreset, error) {
	return domain.RiskPreset{}, domain.Invalid("riskPercentage", "risk percentage must be positive")
}

func newTestRouter() *Router {
	return New(stubAuth{}, nil, nil, stubPresets{})
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"username":"trader","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"username":"trader","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/risk-presets/p-1", nil)
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/risk-presets/p-1", nil)
	req.Header.Set("Authorization", "Token tok-1")
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestNotFoundMapsTo404(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/risk-presets/other", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}

func TestConflictMapsTo409(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("DELETE", "/api/v1/risk-presets/p-1", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 409, resp.StatusCode)
}

func TestValidationMapsTo400(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/api/v1/risk-presets", strings.NewReader(`{"name":"Loose","riskPercentage":0}`))
	req.Header.Set("Authorization", "Bearer tok-1")
	req.Header.Set("Content-Type", "application/json")
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)
}

func TestAuthorizedFetch(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/risk-presets/p-1", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp, err := router.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter()

	resp, err := router.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}
