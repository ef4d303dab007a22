package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The access token is read from the accessToken cookie and, when the cookie
// is absent, from an "Authorization: Bearer" header. A valid token's claims
// are stored in the request context for the role gate; anything else is
// rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := accessTokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without usable access token")
			writeError(w, r, err, "authentication failed")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err, "access token rejected")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(ctx, token.Claims)))
	})
}

// accessTokenFromRequest prefers the cookie over the header when both are sent.
func accessTokenFromRequest(r *http.Request) (string, error) {
	if token := cookieValue(r, accessTokenCookie); token != "" {
		return token, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAccessToken
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}
	return token, nil
}
