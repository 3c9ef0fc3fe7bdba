package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsUnreachableServer(t *testing.T) {
	// Grab an address nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/sse"
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := Connect(ctx, Options{ServerURL: url, Name: "test-client", Version: "0.0.0"})

	require.Error(t, err)
	assert.Nil(t, c)
}

func TestConnect_RejectsNonMCPEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := Connect(ctx, Options{ServerURL: srv.URL + "/sse", Name: "test-client", Version: "0.0.0"})

	// Whether the transport rejects the status or the handshake times
	// out, the caller must get an error, never a half-open client.
	require.Error(t, err)
	assert.Nil(t, c)
}
