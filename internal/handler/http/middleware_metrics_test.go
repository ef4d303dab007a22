package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWithMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	h, mocks := newTestHandler(t, WithMetrics(m))

	expectSession(mocks, adminUser())
	mocks.users.EXPECT().GetUser(gomock.Any(), int64(42)).Return(plainUser(), nil)

	rec := serve(h, authedRequest(http.MethodGet, "/api/admin/users/42", "", adminUser().UserID))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := scrape(t, m)
	assert.Contains(t, body, `mentorhub_http_requests_total{method="GET",route="/api/admin/users/{id}",status="200"} 1`)
}

func TestWithMetrics_UnmatchedRoute(t *testing.T) {
	m := metrics.New()
	h, _ := newTestHandler(t, WithMetrics(m))

	serve(h, newJSONRequest(http.MethodGet, "/nowhere", ""))

	assert.Contains(t, scrape(t, m), `route="unmatched",status="404"`)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("mounted with metrics", func(t *testing.T) {
		h, _ := newTestHandler(t, WithMetrics(metrics.New()))

		rec := serve(h, newJSONRequest(http.MethodGet, "/metrics", ""))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("absent without metrics", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(h, newJSONRequest(http.MethodGet, "/metrics", ""))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
