package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/logger"
)

const healthTimeout = 2 * time.Second

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())

	writeOK(w, r, "Version fetched successfully", info)
}

// health pings the database. A nil checker reports healthy.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.services.HealthChecker == nil {
		writeOK(w, r, "ok", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.services.HealthChecker.Ping(ctx); err != nil {
		logger.FromRequest(r).Err(err).Msg("database ping failed")
		writeEnvelope(w, r, http.StatusServiceUnavailable, "database unavailable", nil)
		return
	}

	writeOK(w, r, "ok", nil)
}
