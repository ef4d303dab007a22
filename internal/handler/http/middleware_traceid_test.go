package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func executeWithTraceID(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	h := &Handler{logger: logger.Nop()}

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestWithTraceID_ReusesHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "my-custom-trace-id")

	rec, captured := executeWithTraceID(t, req)

	require.NotNil(t, captured)
	assert.Equal(t, "my-custom-trace-id", rec.Header().Get(traceIDHeader))
}

func TestWithTraceID_GeneratesUUID(t *testing.T) {
	rec, _ := executeWithTraceID(t, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	_, err := uuid.Parse(rec.Header().Get(traceIDHeader))
	assert.NoError(t, err)
}

func TestWithTraceID_UsesActiveSpan(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))

	rec, _ := executeWithTraceID(t, req)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec.Header().Get(traceIDHeader))
}

func TestWithTraceID_LoggerInContext(t *testing.T) {
	_, captured := executeWithTraceID(t, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, captured)
	assert.NotNil(t, logger.FromRequest(captured))
}
