package ollama

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unmarshalEnvelope decodes rendered JSON into a raw map so tests can
// check which keys actually made it onto the wire.
func unmarshalEnvelope(t *testing.T, env Envelope) map[string]any {
	t.Helper()
	out, err := env.JSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	return raw
}

func TestEnvelope_SuccessShape(t *testing.T) {
	env := Success(VersionInfo{Version: "0.5.1"}, Metrics{ElapsedMS: 12, Endpoint: EndpointVersion})

	raw := unmarshalEnvelope(t, env)

	assert.Equal(t, "success", raw["status"])
	assert.Contains(t, raw, "data")
	assert.NotContains(t, raw, "error")

	metrics, ok := raw["metrics"].(map[string]any)
	require.True(t, ok, "metrics must always be present")
	assert.Equal(t, float64(12), metrics["elapsed_ms"])
	assert.Equal(t, EndpointVersion, metrics["endpoint"])
}

func TestEnvelope_ErrorShape(t *testing.T) {
	env := Failure(KindClientError, "backend rejected the request (HTTP 404)", `model "x" not found`,
		Metrics{ElapsedMS: 3, Endpoint: EndpointShow})

	raw := unmarshalEnvelope(t, env)

	assert.Equal(t, "error", raw["status"])
	assert.NotContains(t, raw, "data")

	errInfo, ok := raw["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "client_error", errInfo["kind"])
	assert.Equal(t, "backend rejected the request (HTTP 404)", errInfo["message"])
	assert.Equal(t, `model "x" not found`, errInfo["detail"])
}

func TestEnvelope_DetailOmittedWhenEmpty(t *testing.T) {
	env := Failure(KindNotImplemented, "gated", "", Metrics{Endpoint: "/api/pull"})

	raw := unmarshalEnvelope(t, env)

	errInfo := raw["error"].(map[string]any)
	assert.NotContains(t, errInfo, "detail")
}

func TestEnvelope_ZeroElapsedStillSerialized(t *testing.T) {
	// Rejections never reach the network, so elapsed_ms is zero; the
	// field must still be present in the output.
	env := Failure(KindInvalidParameters, "model is required", "", Metrics{Endpoint: EndpointChat})

	raw := unmarshalEnvelope(t, env)

	metrics := raw["metrics"].(map[string]any)
	assert.Equal(t, float64(0), metrics["elapsed_ms"])
}
