package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// accessTokenFromRequest
// ─────────────────────────────────────────────

func TestAccessTokenFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		cookie  string
		header  string
		want    string
		wantErr error
	}{
		{name: "cookie", cookie: "from-cookie", want: "from-cookie"},
		{name: "bearer header", header: "Bearer from-header", want: "from-header"},
		{name: "lower-case scheme", header: "bearer from-header", want: "from-header"},
		{name: "cookie wins over header", cookie: "from-cookie", header: "Bearer from-header", want: "from-cookie"},
		{name: "nothing", wantErr: ErrMissingAccessToken},
		{name: "token missing", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := accessTokenFromRequest(req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuth_StoresClaims(t *testing.T) {
	h, m := newTestHandler(t)
	claims := &models.AccessClaims{Email: "alice@example.com"}
	m.auth.EXPECT().ParseAccessToken(gomock.Any(), "good").Return(models.Token{Claims: claims}, nil)

	var got *models.AccessClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Same(t, claims, got)
}

func TestAuth_Rejects(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.auth(failHandler(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		decodeEnvelope(t, rec)
	})

	t.Run("invalid token", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.auth.EXPECT().ParseAccessToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrInvalidAccessToken)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "expired"})
		rec := httptest.NewRecorder()
		h.auth(failHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, service.ErrInvalidAccessToken.Message, decodeEnvelope(t, rec).Message)
	})
}

func failHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next handler must not be called")
	})
}
