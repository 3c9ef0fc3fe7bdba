package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDo_RequestHeaders(t *testing.T) {
	var gotMethod, gotPath, gotAccept, gotAgent, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"0.5.1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "Ollama-MCP-Guidance/1.0", 5*time.Second)

	out := c.Get(context.Background(), EndpointVersion)
	require.NoError(t, out.Err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, EndpointVersion, gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "Ollama-MCP-Guidance/1.0", gotAgent)
	// GET carries no body, so no content type either.
	assert.Empty(t, gotContentType)

	out = c.Post(context.Background(), EndpointShow, showRequest{Model: "llama3.2"})
	require.NoError(t, out.Err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientDo_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "test", 5*time.Second)
	out := c.Get(context.Background(), EndpointTags)

	require.NoError(t, out.Err)
	assert.Equal(t, EndpointTags, gotPath)
}

func TestClientDo_MarshalsPayload(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test", 5*time.Second)
	out := c.Post(context.Background(), EndpointChat, chatRequest{
		Model:    "llama3.2",
		Messages: []Message{{Role: "user", Content: "hi"}},
		Stream:   false,
	})
	require.NoError(t, out.Err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "llama3.2", sent["model"])
	// Stream has no omitempty: the false must be on the wire.
	stream, present := sent["stream"]
	require.True(t, present, "stream flag must be serialized explicitly")
	assert.Equal(t, false, stream)
}

func TestClientDo_CompletedExchangeKeepsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test", 5*time.Second)
	out := c.Get(context.Background(), EndpointTags)

	// A non-2xx answer is a completed exchange, not a transport fault.
	require.NoError(t, out.Err)
	assert.Equal(t, http.StatusNotFound, out.StatusCode)
	assert.JSONEq(t, `{"error":"model not found"}`, string(out.Body))
}

func TestClientDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test", 50*time.Millisecond)
	out := c.Get(context.Background(), EndpointVersion)

	require.Error(t, out.Err)
	assert.Zero(t, out.StatusCode)
}

func TestClientDo_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "test", time.Second)
	out := c.Get(context.Background(), EndpointVersion)

	require.Error(t, out.Err)
}

func TestClientDo_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "test", 5*time.Second)
	out := c.Get(ctx, EndpointVersion)

	require.Error(t, out.Err)
}
