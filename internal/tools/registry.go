package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/metrics"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/ollama"
)

// NotImplemented lists the administrative operations the catalogue
// refuses by policy, mapped to the backend path each would hit. The
// table is data; there are no handler stubs behind it. Dispatching any
// of these names fails before any network activity.
var NotImplemented = map[string]string{
	"post_copy_model":   "/api/copy",
	"post_pull_model":   "/api/pull",
	"post_push_model":   "/api/push",
	"post_create_model": "/api/create",
	"delete_model":      "/api/delete",
	"head_check_blob":   "/api/blobs",
	"post_push_blob":    "/api/blobs",
}

// Registry manages the tool catalogue. Registration happens once at
// startup; dispatch is concurrent after that.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tools, sorted by name
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Dispatch runs a tool by name. Names on the not-implemented table and
// names outside the catalogue are rejected here, before any handler or
// network activity.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	if endpoint, gated := NotImplemented[name]; gated {
		metrics.GateRejectionsTotal.WithLabelValues(name).Inc()
		return r.rejectJSON(name, endpoint,
			fmt.Sprintf("%s is not implemented by policy; no request was sent to the backend", name))
	}

	t, ok := r.Get(name)
	if !ok {
		return r.rejectJSON(name, "",
			fmt.Sprintf("unknown tool %q; the catalogue is fixed", name))
	}

	return t.Execute(ctx, args)
}

func (r *Registry) rejectJSON(name, endpoint, message string) (string, error) {
	env := ollama.Failure(ollama.KindNotImplemented, message, "", ollama.Metrics{
		Endpoint:  endpoint,
		RequestID: uuid.NewString(),
	})
	metrics.RecordDispatch(name, string(env.Status), string(ollama.KindNotImplemented))
	return env.JSON()
}
