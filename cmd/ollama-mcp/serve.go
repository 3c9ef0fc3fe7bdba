package main

import (
	"fmt"
	"io"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/daemon"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		transport   string
		host        string
		port        int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long:  "Run the MCP server over stdio (for editor and agent integrations) or SSE (for networked clients).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			logger, closer, err := serveLogger(transport, cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			defer closer.Close()

			srv, err := daemon.NewServer(cfg, daemon.Options{
				Transport:   transport,
				Host:        host,
				Port:        port,
				MetricsAddr: metricsAddr,
			}, logger)
			if err != nil {
				return err
			}

			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport to serve on: stdio or sse")
	cmd.Flags().StringVar(&host, "host", "localhost", "Host to bind the SSE listener to")
	cmd.Flags().IntVar(&port, "port", 8787, "Port for the SSE listener")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Optional address for Prometheus metrics and health checks (e.g. :9090)")

	return cmd
}

// serveLogger keeps the console clean in stdio mode: stdout carries the
// protocol and many MCP hosts surface stderr directly to users, so logs
// go to the rolling file only.
func serveLogger(transport string, cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if transport == "" || transport == "stdio" {
		return config.SetupFileOnlyLogger(cfg)
	}
	return config.SetupLogger(cfg)
}
