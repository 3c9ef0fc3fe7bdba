package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logical backend paths. Metrics and envelopes always report these, never
// the full URL.
const (
	EndpointVersion    = "/api/version"
	EndpointTags       = "/api/tags"
	EndpointPS         = "/api/ps"
	EndpointShow       = "/api/show"
	EndpointChat       = "/api/chat"
	EndpointGenerate   = "/api/generate"
	EndpointEmbed      = "/api/embed"
	EndpointEmbeddings = "/api/embeddings"
)

// Client executes single HTTP exchanges against an Ollama backend. One
// request per call, no retries, no state between calls.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Outcome is the raw result of one exchange. Err is set only when the
// exchange never completed; a completed exchange always carries
// StatusCode and Body, whatever the status was.
type Outcome struct {
	StatusCode int
	Body       []byte
	Err        error
}

// NewClient creates a client for the given backend. The timeout bounds
// the whole exchange, including reading the body.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, userAgent, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client around a caller-supplied
// http.Client. Tests use this to inject counting or faulty transports.
func NewClientWithHTTP(baseURL, userAgent string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes one exchange. payload, when non-nil, is marshalled to JSON
// and sent as the request body.
func (c *Client) Do(ctx context.Context, method, path string, payload any) Outcome {
	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return Outcome{Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to reach backend: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return Outcome{StatusCode: resp.StatusCode, Body: body}
}

// Get executes a GET exchange against path.
func (c *Client) Get(ctx context.Context, path string) Outcome {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post executes a POST exchange with a JSON body.
func (c *Client) Post(ctx context.Context, path string, payload any) Outcome {
	return c.Do(ctx, http.MethodPost, path, payload)
}
