package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/client"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/daemon"
	"github.com/spf13/cobra"
)

func callCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke one tool and print its response envelope",
		Long:  "Invoke a single tool by name, with arguments given as a JSON object. Talks to a running SSE server when --server is set, otherwise dispatches in-process.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			toolArgs := map[string]any{}
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
					return fmt.Errorf("arguments must be a JSON object: %w", err)
				}
			}

			ctx := context.Background()

			if serverURL != "" {
				return callRemote(ctx, serverURL, name, toolArgs)
			}
			return callLocal(ctx, name, toolArgs)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "SSE endpoint of a running server (e.g. http://localhost:8787/sse)")

	return cmd
}

func callRemote(ctx context.Context, serverURL, name string, args map[string]any) error {
	c, err := client.Connect(ctx, client.Options{
		ServerURL: serverURL,
		Name:      "ollama-mcp cli",
		Version:   daemon.Version,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	out, err := c.CallTool(ctx, name, args)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func callLocal(ctx context.Context, name string, args map[string]any) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, closer, err := config.SetupFileOnlyLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	srv, err := daemon.NewServer(cfg, daemon.Options{}, logger)
	if err != nil {
		return err
	}

	out, err := srv.Registry().Dispatch(ctx, name, args)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
