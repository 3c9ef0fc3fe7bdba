package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/docnav"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/metrics"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/templates"
)

// GuideTool serves the embedded getting-started guide.
type GuideTool struct{}

// NewGuideTool creates the guide tool
func NewGuideTool() *GuideTool {
	return &GuideTool{}
}

func (t *GuideTool) Name() string {
	return "get_started_guide"
}

func (t *GuideTool) Description() string {
	return "Read this first: project overview, the full tool catalogue with implementation status, configuration keys, and recommended workflows."
}

func (t *GuideTool) Parameters() map[string]any {
	return noParams()
}

func (t *GuideTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	guide, err := templates.Guide()
	if err != nil {
		metrics.RecordDispatch(t.Name(), "error", "")
		return "", fmt.Errorf("failed to load guide: %w", err)
	}
	metrics.RecordDispatch(t.Name(), "success", "")
	return guide, nil
}

// DocSectionTool navigates the configured API documentation by heading
// path and returns the matching section with navigation context.
type DocSectionTool struct {
	cfg config.APIDocConfig
}

// NewDocSectionTool creates the doc navigation tool
func NewDocSectionTool(cfg config.APIDocConfig) *DocSectionTool {
	return &DocSectionTool{cfg: cfg}
}

func (t *DocSectionTool) Name() string {
	return "get_api_doc_section"
}

func (t *DocSectionTool) Description() string {
	return `Navigate the Ollama API documentation by heading path, e.g. ["API", "Generate a completion", "Parameters"]. Reports per-level match status and, when a level does not match, the titles that were available.`
}

func (t *DocSectionTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"titles": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Heading titles forming the path to the section, outermost first. An empty list returns the document with its top-level titles.",
			},
			"max_length": map[string]any{
				"type":        "integer",
				"description": "Overrides the configured api_doc.max_length for this call",
			},
		},
		"required": []string{"titles"},
	}
}

func (t *DocSectionTool) Execute(_ context.Context, args map[string]any) (string, error) {
	titles, ok := stringListArg(args["titles"])
	if !ok {
		return "", fmt.Errorf("titles must be a list of strings")
	}

	maxLength := t.cfg.MaxLength
	if raw, present := args["max_length"]; present {
		switch n := raw.(type) {
		case float64:
			maxLength = int(n)
		case int:
			maxLength = n
		default:
			return "", fmt.Errorf("max_length must be a number")
		}
	}

	doc, err := os.ReadFile(t.cfg.FilePath)
	if err != nil {
		metrics.RecordDispatch(t.Name(), "error", "")
		return docReadFailure(t.cfg.FilePath, titles, maxLength, err)
	}

	nav := docnav.Navigate(string(doc), titles, maxLength)
	if nav.Success {
		metrics.RecordDispatch(t.Name(), "success", "")
	} else {
		metrics.RecordDispatch(t.Name(), "error", "")
	}

	truncated := len([]rune(nav.Content)) < nav.ContentLength
	return marshalDocResult(navMetadata(nav), nav.ContentLength, maxLength, truncated, nav.Content)
}

// navMetadata renders the navigation outcome as the human-readable block
// callers display alongside the content.
func navMetadata(nav docnav.Result) string {
	verdict := "Query succeeded"
	hint := "Info: the requested content was found"
	if !nav.Success {
		verdict = "Query failed"
		hint = "Suggestion: check the title names; the available titles are listed below"
	}

	lines := []string{
		verdict,
		hint,
		fmt.Sprintf("Deepest level reached: %d", nav.CurrentLevel),
		"Query path:",
	}
	for i, title := range nav.QueryPath {
		var state string
		switch nav.StatusList[i] {
		case docnav.StatusFound:
			state = "found"
		case docnav.StatusMiss:
			state = "not found"
		default:
			state = "not attempted"
		}
		lines = append(lines, fmt.Sprintf("  %s - %s", title, state))
	}
	lines = append(lines, "Available titles at current level:")
	for _, title := range nav.AvailableTitles {
		lines = append(lines, "  - "+title)
	}
	lines = append(lines, "Available titles at next level:")
	for _, title := range nav.NextLevelTitles {
		lines = append(lines, "  - "+title)
	}
	return strings.Join(lines, "\n")
}

func docReadFailure(path string, titles []string, maxLength int, readErr error) (string, error) {
	metadata := strings.Join([]string{
		"Query failed",
		fmt.Sprintf("Error: failed to read the documentation file - %v", readErr),
		"Deepest level reached: 0",
		fmt.Sprintf("Query path: %s - not executed", strings.Join(titles, " > ")),
		"Available titles at current level: unavailable",
		"Available titles at next level: unavailable",
		"",
		"Configuration check:",
		"Verify the api_doc.file_path setting in config.json",
		"Current value: " + path,
	}, "\n")
	return marshalDocResult(metadata, 0, maxLength, false, "")
}

func marshalDocResult(metadata string, originalLength, maxLength int, truncated bool, content string) (string, error) {
	out := map[string]any{
		"metadata": metadata,
		"truncation": map[string]any{
			"original_length": originalLength,
			"max_length":      maxLength,
			"is_truncated":    truncated,
		},
		"content": content,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal doc result: %w", err)
	}
	return string(data), nil
}
