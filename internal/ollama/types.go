package ollama

import (
	"encoding/json"
	"errors"
	"fmt"
)

// VersionInfo is the payload of GET /api/version.
type VersionInfo struct {
	Version string `json:"version"`
}

// ModelDetails is the details block Ollama attaches to model listings.
type ModelDetails struct {
	ParentModel       string   `json:"parent_model,omitempty"`
	Format            string   `json:"format,omitempty"`
	Family            string   `json:"family,omitempty"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size,omitempty"`
	QuantizationLevel string   `json:"quantization_level,omitempty"`
}

// ModelSummary is one entry of GET /api/tags.
type ModelSummary struct {
	Name       string       `json:"name"`
	Model      string       `json:"model,omitempty"`
	ModifiedAt string       `json:"modified_at,omitempty"`
	Size       int64        `json:"size,omitempty"`
	Digest     string       `json:"digest,omitempty"`
	Details    ModelDetails `json:"details,omitempty"`
}

// ModelList is the payload of GET /api/tags. An empty list is a valid
// answer; a missing or non-list models key is not.
type ModelList struct {
	Models []ModelSummary `json:"models"`
}

// RunningModel is one entry of GET /api/ps.
type RunningModel struct {
	Name      string       `json:"name"`
	Model     string       `json:"model,omitempty"`
	Size      int64        `json:"size,omitempty"`
	Digest    string       `json:"digest,omitempty"`
	Details   ModelDetails `json:"details,omitempty"`
	ExpiresAt string       `json:"expires_at,omitempty"`
	SizeVRAM  int64        `json:"size_vram,omitempty"`
}

// ProcessList is the payload of GET /api/ps.
type ProcessList struct {
	Models []RunningModel `json:"models"`
}

// ModelInfo is the payload of POST /api/show. Ollama's schema here is
// open-ended and grows between releases, so the uncommon blocks stay
// loosely typed.
type ModelInfo struct {
	License      string         `json:"license,omitempty"`
	Modelfile    string         `json:"modelfile,omitempty"`
	Parameters   string         `json:"parameters,omitempty"`
	Template     string         `json:"template,omitempty"`
	Details      ModelDetails   `json:"details,omitempty"`
	Info         map[string]any `json:"model_info,omitempty"`
	Capabilities []string       `json:"capabilities,omitempty"`
	ModifiedAt   string         `json:"modified_at,omitempty"`
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the payload of POST /api/chat.
type ChatResult struct {
	Model              string  `json:"model"`
	CreatedAt          string  `json:"created_at,omitempty"`
	Message            Message `json:"message"`
	Done               bool    `json:"done"`
	DoneReason         string  `json:"done_reason,omitempty"`
	TotalDuration      int64   `json:"total_duration,omitempty"`
	LoadDuration       int64   `json:"load_duration,omitempty"`
	PromptEvalCount    int     `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64   `json:"prompt_eval_duration,omitempty"`
	EvalCount          int     `json:"eval_count,omitempty"`
	EvalDuration       int64   `json:"eval_duration,omitempty"`
}

// GenerateResult is the payload of POST /api/generate.
type GenerateResult struct {
	Model              string `json:"model"`
	CreatedAt          string `json:"created_at,omitempty"`
	Response           string `json:"response"`
	Done               bool   `json:"done"`
	DoneReason         string `json:"done_reason,omitempty"`
	Context            []int  `json:"context,omitempty"`
	TotalDuration      int64  `json:"total_duration,omitempty"`
	LoadDuration       int64  `json:"load_duration,omitempty"`
	PromptEvalCount    int    `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64  `json:"prompt_eval_duration,omitempty"`
	EvalCount          int    `json:"eval_count,omitempty"`
	EvalDuration       int64  `json:"eval_duration,omitempty"`
}

// EmbeddingBatch is the payload of POST /api/embed. The deprecated
// endpoint answers with a single vector; parseEmbeddings folds it into a
// one-element batch so both paths share a shape.
type EmbeddingBatch struct {
	Model           string      `json:"model,omitempty"`
	Embeddings      [][]float64 `json:"embeddings"`
	TotalDuration   int64       `json:"total_duration,omitempty"`
	LoadDuration    int64       `json:"load_duration,omitempty"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
}

func parseVersion(body []byte) (any, error) {
	var v VersionInfo
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("failed to decode version response: %w", err)
	}
	if v.Version == "" {
		return nil, errors.New("version response has no version field")
	}
	return v, nil
}

func parseModelList(body []byte) (any, error) {
	// Probe first: a missing or null models key must be rejected, which
	// a plain struct decode cannot see.
	var probe struct {
		Models *[]json.RawMessage `json:"models"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}
	if probe.Models == nil {
		return nil, errors.New("model list response has no models list")
	}
	var list ModelList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}
	if list.Models == nil {
		list.Models = []ModelSummary{}
	}
	return list, nil
}

func parseProcessList(body []byte) (any, error) {
	var probe struct {
		Models *[]json.RawMessage `json:"models"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode running models: %w", err)
	}
	if probe.Models == nil {
		return nil, errors.New("running models response has no models list")
	}
	var list ProcessList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode running models: %w", err)
	}
	if list.Models == nil {
		list.Models = []RunningModel{}
	}
	return list, nil
}

func parseModelInfo(body []byte) (any, error) {
	// Reject non-object bodies (null, arrays, bare strings) up front;
	// a struct decode silently accepts null.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode model info: %w", err)
	}
	if probe == nil {
		return nil, errors.New("model info response is not an object")
	}
	var info ModelInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode model info: %w", err)
	}
	return info, nil
}

func parseChat(body []byte) (any, error) {
	var probe struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if probe.Message == nil || probe.Message.Content == nil {
		return nil, errors.New("chat response has no message content")
	}
	var result ChatResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return result, nil
}

func parseGenerate(body []byte) (any, error) {
	var probe struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}
	if probe.Response == nil {
		return nil, errors.New("generate response has no response field")
	}
	var result GenerateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}
	return result, nil
}

func parseEmbeddings(body []byte) (any, error) {
	var probe struct {
		Embeddings *[][]float64 `json:"embeddings"`
		Embedding  *[]float64   `json:"embedding"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}

	var batch EmbeddingBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}

	switch {
	case probe.Embeddings != nil:
		if len(*probe.Embeddings) == 0 {
			return nil, errors.New("embeddings response contains no vectors")
		}
	case probe.Embedding != nil:
		// Deprecated endpoint shape: one flat vector.
		if len(*probe.Embedding) == 0 {
			return nil, errors.New("embeddings response contains no vectors")
		}
		batch.Embeddings = [][]float64{*probe.Embedding}
	default:
		return nil, errors.New("embeddings response has no embeddings field")
	}

	for _, vec := range batch.Embeddings {
		if len(vec) == 0 {
			return nil, errors.New("embeddings response contains an empty vector")
		}
	}
	return batch, nil
}
