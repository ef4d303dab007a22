// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	accessExpiry  = time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)
	refreshExpiry = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
)

func stubAuthResponse() models.AuthResponse {
	return models.AuthResponse{
		AccessToken:         "access-jwt",
		AccessTokenExpires:  accessExpiry,
		RefreshToken:        "refresh-opaque",
		RefreshTokenExpires: refreshExpiry,
		Email:               "alice@example.com",
		Role:                models.RoleUser,
	}
}

func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

// ─────────────────────────────────────────────
// register / login / google-login
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Register(gomock.Any(), models.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}, "203.0.113.7").Return(stubAuthResponse(), nil)

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Registration successful", env.Message)

	var data models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "refresh-opaque", data.RefreshToken)

	cookies := responseCookies(rec)
	require.Contains(t, cookies, accessTokenCookie)
	require.Contains(t, cookies, refreshTokenCookie)

	access := cookies[accessTokenCookie]
	assert.Equal(t, "access-jwt", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.Expires.Equal(accessExpiry))

	assert.Equal(t, "refresh-opaque", cookies[refreshTokenCookie].Value)
	assert.True(t, cookies[refreshTokenCookie].Expires.Equal(refreshExpiry))
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, body := range []string{"", "{", `{"email":"a"} {"email":"b"}`} {
		rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/register", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, invalidJSONMessage, decodeEnvelope(t, rec).Message)
	}
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing fields", service.ErrEmailRequired, http.StatusBadRequest, "Email is required."},
		{"unknown email", service.ErrEmailNotFound, http.StatusNotFound, service.ErrEmailNotFound.Message},
		{"invited only", service.ErrAccountNotSetUp, http.StatusUnauthorized, service.ErrAccountNotSetUp.Message},
		{"wrong password", service.ErrInvalidPassword, http.StatusUnauthorized, "Invalid password. Please try again."},
		{"blocked", service.ErrUserBlocked, http.StatusForbidden, service.ErrUserBlocked.Message},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError, "An unexpected error occurred. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, tt.err)

			rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`))

			require.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.Equal(t, "null", string(env.Data))
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogin_RecordsAuthMetrics(t *testing.T) {
	m := metrics.New()
	h, mocks := newTestHandler(t, WithMetrics(m))

	gomock.InOrder(
		mocks.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubAuthResponse(), nil),
		mocks.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, service.ErrInvalidPassword),
	)

	serve(h, newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`))
	serve(h, newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"y"}`))

	body := scrape(t, m)
	assert.Contains(t, body, `mentorhub_auth_attempts_total{operation="login",outcome="success"} 1`)
	assert.Contains(t, body, `mentorhub_auth_attempts_total{operation="login",outcome="failure"} 1`)
}

func TestGoogleLogin(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().FederatedLogin(gomock.Any(), models.FederatedLoginRequest{Email: "alice@example.com", IDToken: "id-tok"}, "203.0.113.7").
		Return(stubAuthResponse(), nil)

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/google-login", `{"email":"alice@example.com","id_token":"id-tok"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", decodeEnvelope(t, rec).Message)
	assert.Len(t, rec.Result().Cookies(), 2)
}

func TestGoogleLogin_Denied(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().FederatedLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, service.ErrFederatedLoginDenied)

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/google-login", `{"email":"eve@example.com"}`))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─────────────────────────────────────────────
// refresh
// ─────────────────────────────────────────────

func TestRefresh_FromCookie(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Refresh(gomock.Any(), "cookie-token", "203.0.113.7").Return(stubAuthResponse(), nil)

	req := newJSONRequest(http.MethodPost, "/api/auth/refresh", `{"refresh_token":"body-token"}`)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "cookie-token"})
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Token refreshed", decodeEnvelope(t, rec).Message)
	assert.Equal(t, "refresh-opaque", responseCookies(rec)[refreshTokenCookie].Value)
}

func TestRefresh_FromBody(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Refresh(gomock.Any(), "body-token", gomock.Any()).Return(stubAuthResponse(), nil)

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/refresh", `{"refresh_token":"body-token"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefresh_MissingToken(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, body := range []string{"", `{}`, `{"refresh_token":""}`, `not-json`} {
		rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/refresh", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestRefresh_RejectedClearsCookies(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Refresh(gomock.Any(), "replayed", gomock.Any()).Return(models.AuthResponse{}, service.ErrRefreshTokenExpired)

	req := newJSONRequest(http.MethodPost, "/api/auth/refresh", "")
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "replayed"})
	rec := serve(h, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token invalid or expired", decodeEnvelope(t, rec).Message)

	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		c := responseCookies(rec)[name]
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

// ─────────────────────────────────────────────
// revoke
// ─────────────────────────────────────────────

func TestRevoke(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Revoke(gomock.Any(), "live-token", "203.0.113.7").Return(nil)

	req := newJSONRequest(http.MethodPost, "/api/auth/revoke", "")
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "live-token"})
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out / tokens revoked", decodeEnvelope(t, rec).Message)
	assert.Negative(t, responseCookies(rec)[accessTokenCookie].MaxAge)
	assert.Negative(t, responseCookies(rec)[refreshTokenCookie].MaxAge)
}

func TestRevoke_WithoutTokenIsIdempotent(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Revoke(gomock.Any(), "", gomock.Any()).Return(nil)

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/revoke", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRevoke_StoreFailure(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Revoke(gomock.Any(), "t", gomock.Any()).Return(errors.New("db down"))

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/revoke", `{"refresh_token":"t"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, rec.Result().Cookies(), 2, "cookies are cleared regardless")
}

// ─────────────────────────────────────────────
// rate limit on the auth group
// ─────────────────────────────────────────────

func TestAuthRoutes_RateLimited(t *testing.T) {
	limiter := &fakeLimiter{decision: cache429()}
	h, _ := newTestHandler(t, WithRateLimiter(limiter))

	rec := serve(h, newJSONRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}

func TestProtectedRoutes_NotRateLimited(t *testing.T) {
	limiter := &fakeLimiter{decision: cache429()}
	h, m := newTestHandler(t, WithRateLimiter(limiter))
	m.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.VersionInfo{Version: "1.0.0"})

	rec := serve(h, newJSONRequest(http.MethodGet, "/api/version", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, limiter.keys)
}
