package templates

import "embed"

//go:embed guide.json ollama-api.md
var FS embed.FS

// Guide returns the embedded getting-started guide as a JSON string
func Guide() (string, error) {
	data, err := FS.ReadFile("guide.json")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// APIDoc returns the embedded starter API documentation
func APIDoc() (string, error) {
	data, err := FS.ReadFile("ollama-api.md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
