package ollama

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseFunc turns a 2xx body into the operation's typed payload. A
// returned error marks the body as unusable, not the call as failed.
type parseFunc func(body []byte) (any, error)

// Normalize classifies one transport outcome into an envelope. The order
// is fixed: transport faults first, then the status class, with body
// parsing only attempted for 2xx answers.
func Normalize(out Outcome, parse parseFunc, m Metrics) Envelope {
	if out.Err != nil {
		return Failure(KindTransportError,
			"cannot reach the Ollama backend; check that it is running and that the configured host is correct",
			out.Err.Error(), m)
	}

	switch {
	case out.StatusCode >= 200 && out.StatusCode < 300:
		data, err := parse(out.Body)
		if err != nil {
			return Failure(KindInvalidResponse,
				"backend answered but the body does not match the expected shape",
				err.Error(), m)
		}
		return Success(data, m)

	case out.StatusCode >= 400 && out.StatusCode < 500:
		return Failure(KindClientError,
			fmt.Sprintf("backend rejected the request (HTTP %d)", out.StatusCode),
			backendDetail(out.Body), m)

	case out.StatusCode >= 500 && out.StatusCode < 600:
		return Failure(KindServerError,
			fmt.Sprintf("backend failed to handle the request (HTTP %d)", out.StatusCode),
			backendDetail(out.Body), m)

	default:
		return Failure(KindUnexpectedStatus,
			fmt.Sprintf("backend answered with unexpected HTTP %d", out.StatusCode),
			backendDetail(out.Body), m)
	}
}

// backendDetail extracts the error field Ollama puts in failure bodies,
// falling back to the raw text.
func backendDetail(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
