package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/handler"
	handlerhttp "github.com/MKhiriev/mentor-hub/internal/handler/http"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	name  string
	calls *[]string
	err   error
}

func (r *recordingRunner) Run() {
	*r.calls = append(*r.calls, "run:"+r.name)
}

func (r *recordingRunner) Stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		*r.calls = append(*r.calls, "stop-without-deadline:"+r.name)
		return r.err
	}
	*r.calls = append(*r.calls, "stop:"+r.name)
	return r.err
}

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:     "127.0.0.1:0",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: time.Second,
	}
}

func testHandlers() *handler.Handlers {
	return &handler.Handlers{
		HTTP: handlerhttp.NewHandler(&service.Services{}, config.App{}, logger.Nop()),
	}
}

func TestNewServer(t *testing.T) {
	s, err := NewServer(testHandlers(), testServerConfig(), logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestNewServer_NothingToServe(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.Server
	}{
		{"nil handlers", nil, testServerConfig()},
		{"no http handler", &handler.Handlers{}, testServerConfig()},
		{"no address", testHandlers(), config.Server{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, tt.cfg, logger.Nop())
			require.ErrorIs(t, err, errNoServersAreCreated)
			assert.Nil(t, s)
		})
	}
}

func TestNewHTTPServer_Settings(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), testServerConfig(), logger.Nop())

	assert.Equal(t, "127.0.0.1:0", h.server.Addr)
	assert.Equal(t, readHeaderTimeout, h.server.ReadHeaderTimeout)
	assert.Equal(t, 5*time.Second, h.server.ReadTimeout)
	assert.Equal(t, 5*time.Second, h.server.WriteTimeout)
	assert.Equal(t, time.Second, h.shutdownTimeout)
}

func TestNewHTTPServer_InstrumentedHandlerServesRoutes(t *testing.T) {
	h := newHTTPServer(testHandlers().HTTP.Init(), testServerConfig(), logger.Nop())

	rec := httptest.NewRecorder()
	h.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Resource not found")
}

func TestHTTPServer_ShutdownBeforeStart(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), testServerConfig(), logger.Nop())
	assert.NotPanics(t, h.Shutdown)
}

func TestHTTPServer_RunAndShutdown(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), testServerConfig(), logger.Nop())

	done := make(chan struct{})
	go func() {
		h.RunServer()
		close(done)
	}()

	// Shutdown may race ListenAndServe; either way RunServer must return.
	time.Sleep(50 * time.Millisecond)
	h.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunServer did not return after Shutdown")
	}
}

func TestServer_ShutdownStopsBackgroundInReverseOrder(t *testing.T) {
	var calls []string
	s, err := NewServer(testHandlers(), testServerConfig(), logger.Nop(),
		WithBackground(
			&recordingRunner{name: "a", calls: &calls},
			nil,
			&recordingRunner{name: "b", calls: &calls, err: errors.New("still busy")},
		),
	)
	require.NoError(t, err)

	s.Shutdown()

	assert.Equal(t, []string{"stop:b", "stop:a"}, calls)
}

func TestServer_ShutdownWithoutTimeout(t *testing.T) {
	var calls []string
	cfg := testServerConfig()
	cfg.ShutdownTimeout = 0

	s, err := NewServer(testHandlers(), cfg, logger.Nop(), WithBackground(&recordingRunner{name: "a", calls: &calls}))
	require.NoError(t, err)

	s.Shutdown()

	assert.Equal(t, []string{"stop-without-deadline:a"}, calls)
}
