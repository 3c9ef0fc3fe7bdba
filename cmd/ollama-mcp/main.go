package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ollama-mcp",
		Short: "MCP server exposing a local Ollama backend",
		Long:  "ollama-mcp serves a fixed catalogue of Ollama tools over the Model Context Protocol, wrapping every backend reply in a uniform response envelope.",
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: ./config.json, then ~/.ollama-mcp/config.json)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(callCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(docCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
