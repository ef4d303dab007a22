package telemetry

import (
	"context"
	"testing"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Telemetry{}, "1.0.0")

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	// the exporter connects lazily, so no collector is needed here
	shutdown, err := Setup(context.Background(), config.Telemetry{OTLPEndpoint: "127.0.0.1:4318", Insecure: true}, "1.0.0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestNewResource(t *testing.T) {
	res := newResource(config.Telemetry{}, "2.1.0")

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "mentor-hub", attrs["service.name"])
	assert.Equal(t, "2.1.0", attrs["service.version"])

	res = newResource(config.Telemetry{ServiceName: "mentor-hub-staging"}, "2.1.0")
	assert.Contains(t, res.String(), "mentor-hub-staging")
}
