package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

const invalidJSONMessage = "Invalid input data"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	resp, err := h.services.AuthService.Register(ctx, req, utils.ClientIP(r))
	h.recordAuth("register", err)
	if err != nil {
		writeError(w, r, err, "registration failed")
		return
	}

	h.setSessionCookies(w, resp)
	writeOK(w, r, "Registration successful", resp)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req, utils.ClientIP(r))
	h.recordAuth("login", err)
	if err != nil {
		writeError(w, r, err, "login failed")
		return
	}

	log.Debug().Str("email", resp.Email).Msg("user successfully logged in")

	h.setSessionCookies(w, resp)
	writeOK(w, r, "Login successful", resp)
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.FederatedLoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	resp, err := h.services.AuthService.FederatedLogin(ctx, req, utils.ClientIP(r))
	h.recordAuth("google_login", err)
	if err != nil {
		writeError(w, r, err, "federated login failed")
		return
	}

	h.setSessionCookies(w, resp)
	writeOK(w, r, "Login successful", resp)
}

// refresh rotates the refresh token taken from the cookie or, for clients
// without cookies, from the JSON body.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	presented, err := refreshTokenFromRequest(r)
	if err != nil {
		writeError(w, r, err, "refresh without token")
		return
	}

	resp, err := h.services.AuthService.Refresh(ctx, presented, utils.ClientIP(r))
	h.recordAuth("refresh", err)
	if err != nil {
		h.clearSessionCookies(w)
		writeError(w, r, err, "refresh failed")
		return
	}

	h.setSessionCookies(w, resp)
	writeOK(w, r, "Token refreshed", resp)
}

// revoke always clears the session cookies, even when the token was unknown.
func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	presented, _ := refreshTokenFromRequest(r)

	err := h.services.AuthService.Revoke(ctx, presented, utils.ClientIP(r))
	h.clearSessionCookies(w)
	if err != nil {
		writeError(w, r, err, "revoke failed")
		return
	}

	writeOK(w, r, "Logged out / tokens revoked", nil)
}

func refreshTokenFromRequest(r *http.Request) (string, error) {
	if token := cookieValue(r, refreshTokenCookie); token != "" {
		return token, nil
	}

	var req models.RefreshRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		if !errors.Is(err, utils.ErrEmptyBody) {
			logger.FromRequest(r).Debug().Err(err).Msg("unreadable refresh request body")
		}
		return "", ErrMissingRefreshToken
	}
	if req.RefreshToken == "" {
		return "", ErrMissingRefreshToken
	}
	return req.RefreshToken, nil
}

func (h *Handler) recordAuth(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	h.metrics.AuthAttempt(operation, outcome)
}
