package http

import (
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

func (h *Handler) getMyStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "get my student profile")
		return
	}

	h.writeStudentProfile(w, r, userID)
}

func (h *Handler) getStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "get student profile")
		return
	}

	h.writeStudentProfile(w, r, userID)
}

func (h *Handler) writeStudentProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	profile, err := h.services.StudentProfileService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "get student profile failed")
		return
	}

	writeOK(w, r, "Profile retrieved successfully", profile)
}

func (h *Handler) createStudentProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.StudentProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	profile, err := h.services.StudentProfileService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "create student profile failed")
		return
	}

	writeEnvelope(w, r, http.StatusCreated, "Profile created successfully", profile)
}

// updateStudentProfile addresses the profile by its owner's user id.
func (h *Handler) updateStudentProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "update student profile")
		return
	}

	var req models.StudentProfileRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	profile, err := h.services.StudentProfileService.Update(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err, "update student profile failed")
		return
	}

	writeOK(w, r, "Profile updated successfully", profile)
}

// deleteStudentProfile addresses the profile by its own id.
func (h *Handler) deleteStudentProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "delete student profile")
		return
	}

	if err = h.services.StudentProfileService.Delete(r.Context(), profileID); err != nil {
		writeError(w, r, err, "delete student profile failed")
		return
	}

	writeOK(w, r, "Profile deleted successfully", nil)
}
