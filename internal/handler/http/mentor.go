package http

import "net/http"

// listMyMentees serves the calling mentor's own mentees.
func (h *Handler) listMyMentees(w http.ResponseWriter, r *http.Request) {
	mentorID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "list mentees")
		return
	}

	mentees, err := h.services.MentorService.ListMentees(r.Context(), mentorID)
	if err != nil {
		writeError(w, r, err, "list mentees failed")
		return
	}

	writeOK(w, r, "Mentees fetched successfully", nonNil(mentees))
}

func (h *Handler) getMyMentor(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "get mentor")
		return
	}

	mentor, err := h.services.MentorService.GetMentorOf(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "get mentor failed")
		return
	}

	writeOK(w, r, "Mentor fetched successfully", mentor)
}
