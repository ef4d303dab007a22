package http

import (
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

// writeEnvelope writes {"status", "message", "data"} with the given status.
func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if _, err := utils.WriteJSON(w, models.APIResponse{Status: status, Message: message, Data: data}, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "http.writeEnvelope").Msg("failed to write response")
	}
}

func writeOK(w http.ResponseWriter, r *http.Request, message string, data any) {
	writeEnvelope(w, r, http.StatusOK, message, data)
}
