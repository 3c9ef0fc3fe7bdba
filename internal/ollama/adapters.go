package ollama

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/metrics"
)

// Service exposes one method per catalogued operation. Every method
// follows the same shape: validate parameters, one transport exchange,
// normalize into an envelope. No state survives a call.
type Service struct {
	client *Client
	logger zerolog.Logger
}

// NewService creates a service on top of a transport client.
func NewService(client *Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Request body shapes. Stream carries no omitempty so the flag is always
// written out explicitly, even when false.

type showRequest struct {
	Model string `json:"model"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// Version fetches the backend build version.
func (s *Service) Version(ctx context.Context) Envelope {
	return s.call(ctx, http.MethodGet, EndpointVersion, nil, parseVersion)
}

// ListModels fetches the installed model catalogue.
func (s *Service) ListModels(ctx context.Context) Envelope {
	return s.call(ctx, http.MethodGet, EndpointTags, nil, parseModelList)
}

// RunningModels fetches the models currently loaded in memory.
func (s *Service) RunningModels(ctx context.Context) Envelope {
	return s.call(ctx, http.MethodGet, EndpointPS, nil, parseProcessList)
}

// ShowModel fetches detailed information about one model.
func (s *Service) ShowModel(ctx context.Context, p ShowParams) Envelope {
	if err := p.Validate(); err != nil {
		return s.Reject(EndpointShow, KindInvalidParameters, err.Error())
	}
	return s.call(ctx, http.MethodPost, EndpointShow, showRequest{Model: p.Model}, parseModelInfo)
}

// Chat sends exactly one user message and waits for the full answer.
func (s *Service) Chat(ctx context.Context, p ChatParams) Envelope {
	if err := p.Validate(); err != nil {
		return s.Reject(EndpointChat, KindInvalidParameters, err.Error())
	}
	body := chatRequest{
		Model:    p.Model,
		Messages: []Message{{Role: "user", Content: p.Prompt}},
		Stream:   false,
	}
	return s.call(ctx, http.MethodPost, EndpointChat, body, parseChat)
}

// Generate runs a single completion and waits for the full answer.
func (s *Service) Generate(ctx context.Context, p GenerateParams) Envelope {
	if err := p.Validate(); err != nil {
		return s.Reject(EndpointGenerate, KindInvalidParameters, err.Error())
	}
	body := generateRequest{
		Model:  p.Model,
		Prompt: p.Prompt,
		Stream: false,
	}
	return s.call(ctx, http.MethodPost, EndpointGenerate, body, parseGenerate)
}

// Embeddings generates vectors through the current backend endpoint.
func (s *Service) Embeddings(ctx context.Context, p EmbedParams) Envelope {
	return s.embed(ctx, EndpointEmbed, p)
}

// LegacyEmbeddings generates vectors through the deprecated endpoint.
// Identical adapter logic; only the target path differs.
func (s *Service) LegacyEmbeddings(ctx context.Context, p EmbedParams) Envelope {
	return s.embed(ctx, EndpointEmbeddings, p)
}

func (s *Service) embed(ctx context.Context, endpoint string, p EmbedParams) Envelope {
	if err := p.Validate(); err != nil {
		return s.Reject(endpoint, KindInvalidParameters, err.Error())
	}
	return s.call(ctx, http.MethodPost, endpoint, embedRequest{Model: p.Model, Input: p.Input}, parseEmbeddings)
}

// Reject builds an error envelope without touching the network. Used for
// parameter failures and for features the catalogue refuses to forward.
func (s *Service) Reject(endpoint string, kind ErrorKind, message string) Envelope {
	m := Metrics{Endpoint: endpoint, RequestID: uuid.NewString()}
	s.logger.Warn().
		Str("endpoint", endpoint).
		Str("request_id", m.RequestID).
		Str("kind", string(kind)).
		Msg("rejected before dispatch")
	return Failure(kind, message, "", m)
}

func (s *Service) call(ctx context.Context, method, endpoint string, payload any, parse parseFunc) Envelope {
	m := Metrics{Endpoint: endpoint, RequestID: uuid.NewString()}

	start := time.Now()
	out := s.client.Do(ctx, method, endpoint, payload)
	elapsed := time.Since(start)
	m.ElapsedMS = elapsed.Milliseconds()
	metrics.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())

	env := Normalize(out, parse, m)
	if env.Status == StatusSuccess {
		env.Metrics.Backend = backendStats(env.Data)
	}

	level := zerolog.InfoLevel
	if env.Status == StatusError {
		level = zerolog.WarnLevel
	}
	evt := s.logger.WithLevel(level).
		Str("endpoint", endpoint).
		Str("request_id", m.RequestID).
		Str("status", string(env.Status)).
		Int64("elapsed_ms", m.ElapsedMS)
	if env.Error != nil {
		evt = evt.Str("kind", string(env.Error.Kind))
	}
	evt.Msg("backend exchange finished")

	return env
}

// backendStats lifts Ollama's self-reported statistics out of inference
// payloads. Durations arrive in nanoseconds.
func backendStats(data any) *BackendStats {
	switch v := data.(type) {
	case ChatResult:
		return inferenceStats(v.TotalDuration, v.PromptEvalCount, v.EvalCount, v.EvalDuration)
	case GenerateResult:
		return inferenceStats(v.TotalDuration, v.PromptEvalCount, v.EvalCount, v.EvalDuration)
	case EmbeddingBatch:
		stats := &BackendStats{
			Vectors:     len(v.Embeddings),
			InputTokens: v.PromptEvalCount,
		}
		if len(v.Embeddings) > 0 {
			stats.Dimension = len(v.Embeddings[0])
		}
		if v.TotalDuration > 0 {
			stats.TotalMS = float64(v.TotalDuration) / 1e6
		}
		return stats
	}
	return nil
}

func inferenceStats(totalNS int64, inputTokens, outputTokens int, evalNS int64) *BackendStats {
	stats := &BackendStats{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}
	if totalNS > 0 {
		stats.TotalMS = float64(totalNS) / 1e6
	}
	if outputTokens > 0 && evalNS > 0 {
		perSecond := float64(outputTokens) / (float64(evalNS) / 1e9)
		stats.TokensPerSecond = math.Round(perSecond*10) / 10
	}
	return stats
}
