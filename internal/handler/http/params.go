package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/go-chi/chi/v5"
)

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathID
	}
	return id, nil
}

// userFilterFromQuery reads ?role=&blocked=&search=. An unparsable blocked
// value is ignored.
func userFilterFromQuery(r *http.Request) models.UserFilter {
	q := r.URL.Query()

	filter := models.UserFilter{
		Role:   models.Role(q.Get("role")),
		Search: q.Get("search"),
	}
	if raw := q.Get("blocked"); raw != "" {
		if blocked, err := strconv.ParseBool(raw); err == nil {
			filter.Blocked = &blocked
		}
	}
	return filter
}

// currentUserID returns the live id stored by the role gate.
func currentUserID(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || userID <= 0 {
		return 0, ErrNoClaims
	}
	return userID, nil
}
