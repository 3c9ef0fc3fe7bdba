package ollama

import (
	"encoding/json"
	"fmt"
)

// Status is the top-level outcome of an operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorKind classifies a failed operation. The set is closed: every
// failure an operation can produce maps to exactly one of these.
type ErrorKind string

const (
	// KindInvalidParameters means the caller's arguments failed validation.
	KindInvalidParameters ErrorKind = "invalid_parameters"
	// KindUnsupportedFeature means the caller asked for something the
	// catalogue deliberately does not offer (streaming, history, images).
	KindUnsupportedFeature ErrorKind = "unsupported_feature"
	// KindNotImplemented means the operation is gated off by policy.
	KindNotImplemented ErrorKind = "not_implemented"
	// KindTransportError means the exchange never completed (connection
	// refused, DNS failure, timeout).
	KindTransportError ErrorKind = "transport_error"
	// KindInvalidResponse means the backend answered 2xx with a body that
	// does not match the operation's expected shape.
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindClientError covers 4xx answers.
	KindClientError ErrorKind = "client_error"
	// KindServerError covers 5xx answers.
	KindServerError ErrorKind = "server_error"
	// KindUnexpectedStatus covers everything else (1xx, 3xx).
	KindUnexpectedStatus ErrorKind = "unexpected_status"
)

// ErrorInfo describes why an operation failed.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	// Detail carries the backend's own error text when one exists.
	Detail string `json:"detail,omitempty"`
}

// BackendStats are the statistics Ollama reports about its own work on
// inference calls, converted to friendlier units.
type BackendStats struct {
	TotalMS         float64 `json:"total_ms,omitempty"`
	InputTokens     int     `json:"input_tokens,omitempty"`
	OutputTokens    int     `json:"output_tokens,omitempty"`
	TokensPerSecond float64 `json:"tokens_per_second,omitempty"`
	Vectors         int     `json:"vectors,omitempty"`
	Dimension       int     `json:"dimension,omitempty"`
}

// Metrics is attached to every envelope, success or error.
type Metrics struct {
	// ElapsedMS is wall time around the transport exchange, monotonic.
	// Zero when the call was rejected before reaching the network.
	ElapsedMS int64 `json:"elapsed_ms"`
	// Endpoint is the logical backend path, never the full URL.
	Endpoint  string        `json:"endpoint"`
	RequestID string        `json:"request_id,omitempty"`
	Backend   *BackendStats `json:"backend,omitempty"`
}

// Envelope is the uniform result of every catalogued operation. Exactly
// one of Data and Error is set; Metrics is always set.
type Envelope struct {
	Status  Status     `json:"status"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Metrics Metrics    `json:"metrics"`
}

// Success builds a success envelope around a parsed payload.
func Success(data any, m Metrics) Envelope {
	return Envelope{
		Status:  StatusSuccess,
		Data:    data,
		Metrics: m,
	}
}

// Failure builds an error envelope. detail may be empty.
func Failure(kind ErrorKind, message, detail string, m Metrics) Envelope {
	return Envelope{
		Status: StatusError,
		Error: &ErrorInfo{
			Kind:    kind,
			Message: message,
			Detail:  detail,
		},
		Metrics: m,
	}
}

// JSON renders the envelope for transport to a tool caller.
func (e Envelope) JSON() (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return string(data), nil
}
