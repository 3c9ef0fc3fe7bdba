package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/client"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/daemon"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/tools"
	"github.com/spf13/cobra"
)

func toolsCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalogue",
		Long:  "List every tool the server exposes, including the admin operations that are declared but answer with a policy error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if serverURL != "" {
				return listRemote(ctx, serverURL)
			}
			return listLocal()
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "SSE endpoint of a running server (e.g. http://localhost:8787/sse)")

	return cmd
}

func listRemote(ctx context.Context, serverURL string) error {
	c, err := client.Connect(ctx, client.Options{
		ServerURL: serverURL,
		Name:      "ollama-mcp cli",
		Version:   daemon.Version,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	infos, err := c.ListTools(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Printf("%-28s %s\n", info.Name, info.Description)
	}
	return nil
}

func listLocal() error {
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

	for _, t := range srv.Registry().List() {
		fmt.Printf("%-28s %s\n", t.Name(), t.Description())
	}

	gated := make([]string, 0, len(tools.NotImplemented))
	for name := range tools.NotImplemented {
		gated = append(gated, name)
	}
	sort.Strings(gated)
	for _, name := range gated {
		fmt.Printf("%-28s declared only; returns a not_implemented error\n", name)
	}
	return nil
}
