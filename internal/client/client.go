package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

// Client talks to a running MCP server, either over SSE or by spawning a
// server process and speaking stdio to it.
type Client struct {
	mcp *client.Client
}

// Options selects how to reach the server.
type Options struct {
	// ServerURL is the SSE endpoint of a running server.
	ServerURL string
	// Command and Args spawn a server process for stdio transport when
	// ServerURL is empty.
	Command string
	Args    []string
	// Name and Version identify this client in the MCP handshake.
	Name    string
	Version string
}

// Connect starts the transport and runs the MCP handshake.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	var c *client.Client

	if opts.ServerURL != "" {
		sse, err := client.NewSSEMCPClient(opts.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create sse client: %w", err)
		}
		c = sse
	} else {
		stdio := transport.NewStdio(opts.Command, nil, opts.Args...)
		c = client.NewClient(stdio)
	}

	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    opts.Name,
		Version: opts.Version,
	}
	initReq.Params.Capabilities = mcp.ClientCapabilities{}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	return &Client{mcp: c}, nil
}

// Close shuts the transport down.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// ToolInfo is one catalogue entry as the server advertises it.
type ToolInfo struct {
	Name        string
	Description string
}

// ListTools fetches the advertised catalogue.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	infos := make([]ToolInfo, 0, len(res.Tools))
	for _, t := range res.Tools {
		infos = append(infos, ToolInfo{Name: t.Name, Description: t.Description})
	}
	return infos, nil
}

// CallTool dispatches one tool call and returns the text payload.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", name, err)
	}

	var b strings.Builder
	for _, content := range res.Content {
		if text, ok := content.(mcp.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	if res.IsError {
		return "", fmt.Errorf("server reported an error: %s", b.String())
	}
	return b.String(), nil
}
