package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:      http.StatusBadRequest,
	service.ErrNotFound:        http.StatusNotFound,
	service.ErrConflict:        http.StatusConflict,
	service.ErrUnauthenticated: http.StatusUnauthorized,
	service.ErrForbidden:       http.StatusForbidden,

	ErrMissingAccessToken:         http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNoClaims:                   http.StatusUnauthorized,
	ErrMissingRefreshToken:        http.StatusBadRequest,
	ErrInvalidPathID:              http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing message for err. Only
// [service.Error] messages and transport sentinels are shown verbatim.
func messageFromError(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "An unexpected error occurred. Please try again later."
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}

// writeError logs err and replies with the envelope matching its kind.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}

	writeEnvelope(w, r, status, messageFromError(err, status), nil)
}
