package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/docnav"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/templates"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func docCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc [title...]",
		Short: "Browse the Ollama API documentation",
		Long:  "Render a section of the Ollama API documentation in the terminal. Titles are matched level by level, e.g.: ollama-mcp doc API \"Generate a completion\" Parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			content, err := loadDoc(cfg.APIDoc.FilePath)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				printTitles(content)
				return nil
			}

			nav := docnav.Navigate(content, args, cfg.APIDoc.MaxLength)
			if !nav.Success {
				return fmt.Errorf("%s", nav.Message)
			}

			fmt.Print(renderMarkdown(nav.Content))
			return nil
		},
	}
}

// loadDoc prefers the configured file and falls back to the embedded copy.
func loadDoc(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	embedded, embErr := templates.APIDoc()
	if embErr != nil {
		return "", fmt.Errorf("failed to read documentation file %s: %w", path, err)
	}
	return embedded, nil
}

func printTitles(content string) {
	fmt.Println("Top-level sections:")
	for _, title := range docnav.TitlesAtLevel(content, 1) {
		fmt.Printf("  %s\n", title)
	}
	fmt.Println()
	fmt.Println("Second-level sections:")
	for _, title := range docnav.TitlesAtLevel(content, 2) {
		fmt.Printf("  %s\n", title)
	}
}

func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return ensureTrailingNewline(text)
	}
	styled, err := r.Render(text)
	if err != nil {
		return ensureTrailingNewline(text)
	}
	return styled
}

func ensureTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
