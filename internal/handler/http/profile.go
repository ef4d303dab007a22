package http

import (
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "get profile")
		return
	}

	user, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "get profile failed")
		return
	}

	writeOK(w, r, "User profile retrieved successfully", user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "update profile")
		return
	}

	var req models.UpdateProfileRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	user, err := h.services.ProfileService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err, "update profile failed")
		return
	}

	writeOK(w, r, "User profile updated successfully", user)
}

// changePassword also ends the session: every refresh token is revoked by
// the service, so the cookies are cleared here.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "change password")
		return
	}

	var req models.ChangePasswordRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	if err = h.services.ProfileService.ChangePassword(r.Context(), userID, req); err != nil {
		writeError(w, r, err, "change password failed")
		return
	}

	h.clearSessionCookies(w)
	writeOK(w, r, "Password changed successfully", nil)
}
