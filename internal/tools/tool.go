package tools

import "context"

// Tool represents a callable catalogue entry
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns a description for the caller
	Description() string

	// Parameters returns the JSON schema for parameters
	Parameters() map[string]any

	// Execute runs the tool and returns the JSON payload for the caller
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// noParams is the schema of tools that take no arguments.
func noParams() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
