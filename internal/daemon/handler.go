package daemon

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/tools"
)

// buildMCP assembles the protocol-level server: every catalogue entry
// becomes an MCP tool, the gated names become visible policy stubs, and
// the API doc is exposed as a resource. All calls route through
// Registry.Dispatch, so the policy gate sits on every path.
func (s *Server) buildMCP() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		ServerName,
		Version,
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(false),
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	for _, t := range s.registry.List() {
		s.addTool(mcpServer, t.Name(), t.Description(), t.Parameters())
	}

	gated := make([]string, 0, len(tools.NotImplemented))
	for name := range tools.NotImplemented {
		gated = append(gated, name)
	}
	sort.Strings(gated)
	for _, name := range gated {
		s.addTool(mcpServer, name,
			"Not implemented by policy. Calling it returns a structured not_implemented error without contacting the backend.",
			map[string]any{"type": "object", "properties": map[string]any{}})
	}

	s.addDocResource(mcpServer)
	return mcpServer
}

func (s *Server) addTool(m *server.MCPServer, name, description string, params map[string]any) {
	tool := mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: toInputSchema(params),
	}

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.logger.Debug().Str("tool", name).Msg("tool call received")

		out, err := s.registry.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			s.logger.Error().Err(err).Str("tool", name).Msg("tool call failed")
			return nil, err
		}
		return textResult(out), nil
	}

	m.AddTool(tool, handler)
}

func (s *Server) addDocResource(m *server.MCPServer) {
	resource := mcp.NewResource(
		"file://api-md",
		"Ollama API documentation",
		mcp.WithResourceDescription("The markdown API documentation configured under api_doc.file_path"),
		mcp.WithMIMEType("text/markdown"),
	)

	path := s.cfg.APIDoc.FilePath
	m.AddResource(resource, func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     string(data),
			},
		}, nil
	})
}

func toInputSchema(params map[string]any) mcp.ToolInputSchema {
	schema := mcp.ToolInputSchema{Type: "object"}
	if v, ok := params["type"].(string); ok {
		schema.Type = v
	}
	if v, ok := params["properties"].(map[string]any); ok {
		schema.Properties = v
	}
	switch req := params["required"].(type) {
	case []string:
		schema.Required = req
	case []any:
		for _, item := range req {
			if str, ok := item.(string); ok {
				schema.Required = append(schema.Required, str)
			}
		}
	}
	return schema
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}
