package main

import (
	"fmt"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/daemon"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server name and version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", daemon.ServerName, daemon.Version)
		},
	}
}
