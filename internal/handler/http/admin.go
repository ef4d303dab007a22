package http

import (
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

// ── users ────────────────────────────────────────────────────────────────────

func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.AddUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	user, err := h.services.UserService.AddUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "add user failed")
		return
	}

	writeEnvelope(w, r, http.StatusCreated, "User added successfully", user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context(), userFilterFromQuery(r))
	if err != nil {
		writeError(w, r, err, "list users failed")
		return
	}

	writeOK(w, r, "Users fetched successfully", nonNil(users))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "get user")
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "get user failed")
		return
	}

	writeOK(w, r, "User fetched successfully", user)
}

func (h *Handler) removeUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "remove user")
		return
	}

	if err = h.services.UserService.RemoveUser(r.Context(), userID); err != nil {
		writeError(w, r, err, "remove user failed")
		return
	}

	writeOK(w, r, "User removed successfully", nil)
}

func (h *Handler) blockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

func (h *Handler) unblockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

func (h *Handler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "set blocked")
		return
	}

	ctx := r.Context()
	if blocked {
		err = h.services.UserService.BlockUser(ctx, userID)
	} else {
		err = h.services.UserService.UnblockUser(ctx, userID)
	}
	if err != nil {
		writeError(w, r, err, "set blocked failed")
		return
	}

	message := "User unblocked successfully"
	if blocked {
		message = "User blocked successfully"
	}
	writeOK(w, r, message, nil)
}

// updateUserRole serves PATCH /api/admin/users/{id}/role.
func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "update role")
		return
	}

	var req models.UpdateRoleRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	h.applyRole(w, r, userID, req.Role)
}

// changeRole serves POST /api/roles/change with the user id in the body.
func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.UpdateRoleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	h.applyRole(w, r, req.UserID, req.Role)
}

func (h *Handler) applyRole(w http.ResponseWriter, r *http.Request, userID int64, role string) {
	user, err := h.services.UserService.UpdateRole(r.Context(), userID, role)
	if err != nil {
		writeError(w, r, err, "update role failed")
		return
	}

	writeOK(w, r, "Role updated successfully", user)
}

// ── mentors ──────────────────────────────────────────────────────────────────

func (h *Handler) assignMentees(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.MentorAssignRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	updated, err := h.services.MentorService.AssignMentees(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "assign mentees failed")
		return
	}

	writeOK(w, r, "Assigned mentees to mentor successfully", map[string]int64{"updated": updated})
}

func (h *Handler) unassignMentees(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.MentorAssignRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	updated, err := h.services.MentorService.UnassignMentees(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "unassign mentees failed")
		return
	}

	writeOK(w, r, "Unassigned mentees successfully", map[string]int64{"updated": updated})
}

func (h *Handler) listMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.services.MentorService.ListMentors(r.Context())
	if err != nil {
		writeError(w, r, err, "list mentors failed")
		return
	}

	writeOK(w, r, "Mentors fetched successfully", nonNil(mentors))
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.services.MentorService.ListStudents(r.Context())
	if err != nil {
		writeError(w, r, err, "list students failed")
		return
	}

	writeOK(w, r, "Students fetched successfully", nonNil(students))
}

// ── notifications ────────────────────────────────────────────────────────────

func (h *Handler) createNotification(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.Notification
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeEnvelope(w, r, http.StatusBadRequest, invalidJSONMessage, nil)
		return
	}

	created, err := h.services.NotificationService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "create notification failed")
		return
	}

	writeEnvelope(w, r, http.StatusCreated, "Notification created", created)
}

// nonNil keeps empty listings as [] instead of null in the envelope.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
