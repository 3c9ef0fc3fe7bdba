package daemon

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Ollama: config.OllamaConfig{
			Host:      "http://localhost:11434",
			Timeout:   30,
			UserAgent: "test-agent",
		},
		APIDoc: config.APIDocConfig{
			FilePath:  "ollama-api.md",
			MaxLength: 8000,
		},
		Log: config.DefaultLogConfig(),
	}
}

func TestNewServer_AssemblesCatalogue(t *testing.T) {
	srv, err := NewServer(testConfig(), Options{}, zerolog.Nop())
	require.NoError(t, err)

	var names []string
	for _, tool := range srv.Registry().List() {
		names = append(names, tool.Name())
	}

	assert.Equal(t, []string{
		"get_api_doc_section",
		"get_ollama_list",
		"get_ollama_version",
		"get_running_models",
		"get_started_guide",
		"post_generate_embeddings",
		"post_generate_embeddings_legacy",
		"post_show_model",
		"simple_chat",
		"simple_generate",
	}, names)
}

func TestRun_RejectsUnknownTransport(t *testing.T) {
	srv, err := NewServer(testConfig(), Options{Transport: "tcp"}, zerolog.Nop())
	require.NoError(t, err)

	err = srv.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestBuildMCP(t *testing.T) {
	srv, err := NewServer(testConfig(), Options{}, zerolog.Nop())
	require.NoError(t, err)

	m := srv.buildMCP()
	assert.NotNil(t, m)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	srv, err := NewServer(testConfig(), Options{MetricsAddr: ":0"}, zerolog.Nop())
	require.NoError(t, err)

	handler := srv.metricsServer().Handler

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestToInputSchema(t *testing.T) {
	t.Run("typed required list", func(t *testing.T) {
		schema := toInputSchema(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"model": map[string]any{"type": "string"},
			},
			"required": []string{"model"},
		})

		assert.Equal(t, "object", schema.Type)
		assert.Contains(t, schema.Properties, "model")
		assert.Equal(t, []string{"model"}, schema.Required)
	})

	t.Run("decoded required list", func(t *testing.T) {
		schema := toInputSchema(map[string]any{
			"type":       "object",
			"properties": map[string]any{},
			"required":   []any{"a", "b"},
		})
		assert.Equal(t, []string{"a", "b"}, schema.Required)
	})

	t.Run("no params", func(t *testing.T) {
		schema := toInputSchema(map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		})
		assert.Equal(t, "object", schema.Type)
		assert.Empty(t, schema.Required)
	})
}
