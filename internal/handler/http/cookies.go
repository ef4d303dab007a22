package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/mentor-hub/models"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

func (h *Handler) sessionCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// setSessionCookies delivers both tokens of a freshly minted session.
func (h *Handler) setSessionCookies(w http.ResponseWriter, resp models.AuthResponse) {
	http.SetCookie(w, h.sessionCookie(accessTokenCookie, resp.AccessToken, resp.AccessTokenExpires))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, resp.RefreshToken, resp.RefreshTokenExpires))
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		c := h.sessionCookie(name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
