package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/metrics"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/ollama"
)

// backendTool is a catalogue entry whose handler produces an envelope.
type backendTool struct {
	name        string
	description string
	params      map[string]any
	run         func(ctx context.Context, args map[string]any) ollama.Envelope
}

func (t *backendTool) Name() string               { return t.name }
func (t *backendTool) Description() string        { return t.description }
func (t *backendTool) Parameters() map[string]any { return t.params }

func (t *backendTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	env := t.run(ctx, args)
	kind := ""
	if env.Error != nil {
		kind = string(env.Error.Kind)
	}
	metrics.RecordDispatch(t.name, string(env.Status), kind)
	return env.JSON()
}

// Argument keys that name deliberately unsupported features. Their
// presence is an error, never a silent drop.
var (
	chatUnsupported     = []string{"messages", "history", "system", "images", "stream"}
	generateUnsupported = []string{"stream", "raw", "format", "system", "context", "images"}
)

// RegisterBackendTools adds every backend-facing catalogue entry.
func RegisterBackendTools(r *Registry, svc *ollama.Service) {
	r.Register(&backendTool{
		name:        "get_ollama_version",
		description: "Get the Ollama server version. Useful as a connectivity check before other operations.",
		params:      noParams(),
		run: func(ctx context.Context, _ map[string]any) ollama.Envelope {
			return svc.Version(ctx)
		},
	})

	r.Register(&backendTool{
		name:        "get_ollama_list",
		description: "List all models installed on the Ollama server.",
		params:      noParams(),
		run: func(ctx context.Context, _ map[string]any) ollama.Envelope {
			return svc.ListModels(ctx)
		},
	})

	r.Register(&backendTool{
		name:        "get_running_models",
		description: "Show the models currently loaded in memory, with their resource usage.",
		params:      noParams(),
		run: func(ctx context.Context, _ map[string]any) ollama.Envelope {
			return svc.RunningModels(ctx)
		},
	})

	r.Register(&backendTool{
		name:        "post_show_model",
		description: "Get detailed information about one model: license, template, parameters, capabilities.",
		params: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"model": map[string]any{
					"type":        "string",
					"description": "Model name, e.g. llama3.2:latest",
				},
			},
			"required": []string{"model"},
		},
		run: func(ctx context.Context, args map[string]any) ollama.Envelope {
			return svc.ShowModel(ctx, ollama.ShowParams{Model: stringArg(args, "model")})
		},
	})

	r.Register(&backendTool{
		name:        "simple_chat",
		description: "Send one user message to a model and return the complete answer. Single turn only: no history, no system prompt, no images, no streaming.",
		params: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"model": map[string]any{
					"type":        "string",
					"description": "Model name, e.g. llama3.2:latest",
				},
				"prompt": map[string]any{
					"type":        "string",
					"description": "The user message",
				},
			},
			"required": []string{"model", "prompt"},
		},
		run: func(ctx context.Context, args map[string]any) ollama.Envelope {
			if env, rejected := refuseUnsupported(svc, ollama.EndpointChat, "simple_chat", args, chatUnsupported); rejected {
				return env
			}
			return svc.Chat(ctx, ollama.ChatParams{
				Model:  stringArg(args, "model"),
				Prompt: stringArg(args, "prompt"),
			})
		},
	})

	r.Register(&backendTool{
		name:        "simple_generate",
		description: "Run a single text completion for a prompt and return the complete answer. No streaming, no raw mode, no format forcing.",
		params: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"model": map[string]any{
					"type":        "string",
					"description": "Model name, e.g. llama3.2:latest",
				},
				"prompt": map[string]any{
					"type":        "string",
					"description": "The prompt to complete",
				},
			},
			"required": []string{"model", "prompt"},
		},
		run: func(ctx context.Context, args map[string]any) ollama.Envelope {
			if env, rejected := refuseUnsupported(svc, ollama.EndpointGenerate, "simple_generate", args, generateUnsupported); rejected {
				return env
			}
			return svc.Generate(ctx, ollama.GenerateParams{
				Model:  stringArg(args, "model"),
				Prompt: stringArg(args, "prompt"),
			})
		},
	})

	r.Register(&backendTool{
		name:        "post_generate_embeddings",
		description: "Generate embedding vectors for one string or a batch of strings.",
		params:      embedParams(),
		run: func(ctx context.Context, args map[string]any) ollama.Envelope {
			input, ok := stringListArg(args["input"])
			if !ok {
				return svc.Reject(ollama.EndpointEmbed, ollama.KindInvalidParameters,
					"input must be a string or a list of strings")
			}
			return svc.Embeddings(ctx, ollama.EmbedParams{
				Model: stringArg(args, "model"),
				Input: input,
			})
		},
	})

	r.Register(&backendTool{
		name:        "post_generate_embeddings_legacy",
		description: "Generate embedding vectors through the deprecated /api/embeddings endpoint. Same behavior as post_generate_embeddings; kept for older Ollama releases.",
		params:      embedParams(),
		run: func(ctx context.Context, args map[string]any) ollama.Envelope {
			input, ok := stringListArg(args["input"])
			if !ok {
				return svc.Reject(ollama.EndpointEmbeddings, ollama.KindInvalidParameters,
					"input must be a string or a list of strings")
			}
			return svc.LegacyEmbeddings(ctx, ollama.EmbedParams{
				Model: stringArg(args, "model"),
				Input: input,
			})
		},
	})
}

func embedParams() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"model": map[string]any{
				"type":        "string",
				"description": "Model name, e.g. nomic-embed-text",
			},
			"input": map[string]any{
				"description": "A string, or a list of strings for a batch",
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"required": []string{"model", "input"},
	}
}

// refuseUnsupported rejects arguments that name features the catalogue
// deliberately does not offer.
func refuseUnsupported(svc *ollama.Service, endpoint, tool string, args map[string]any, keys []string) (ollama.Envelope, bool) {
	var present []string
	for _, k := range keys {
		if _, ok := args[k]; ok {
			present = append(present, k)
		}
	}
	if len(present) == 0 {
		return ollama.Envelope{}, false
	}
	sort.Strings(present)
	msg := fmt.Sprintf("%s does not accept %s; the operation is single-shot and non-streaming",
		tool, strings.Join(present, ", "))
	return svc.Reject(endpoint, ollama.KindUnsupportedFeature, msg), true
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func stringListArg(v any) ([]string, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case string:
		return []string{x}, true
	case []string:
		return x, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
