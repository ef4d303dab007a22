package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// makeRequest creates a test request whose context logger writes to buf,
// the same way withTraceID installs it.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "198.51.100.4:1234"
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    http.HandlerFunc
		wantStatus int
		wantInLog  []string
	}{
		{
			name:   "explicit status and body",
			method: http.MethodPost,
			path:   "/api/auth/login",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte("nope"))
			},
			wantStatus: http.StatusUnauthorized,
			wantInLog:  []string{`"status":401`, `"size":4`, `"method":"POST"`, `"uri":"/api/auth/login"`, `"ip":"198.51.100.4"`},
		},
		{
			name:       "implicit 200 when nothing is written",
			method:     http.MethodGet,
			path:       "/api/health",
			handler:    func(http.ResponseWriter, *http.Request) {},
			wantStatus: http.StatusOK,
			wantInLog:  []string{`"status":200`, `"size":0`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			rec := httptest.NewRecorder()
			h.withLogging(tt.handler).ServeHTTP(rec, makeRequest(tt.method, tt.path, &buf))

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantInLog {
				assert.Contains(t, buf.String(), want)
			}
			assert.Contains(t, buf.String(), `"duration"`)
		})
	}
}
