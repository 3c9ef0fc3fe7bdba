package ollama

import (
	"errors"
	"strings"
)

// Sentinel validation errors. Their text ends up verbatim in
// invalid_parameters envelopes.
var (
	ErrMissingModel  = errors.New("model is required and must be a non-empty string")
	ErrMissingPrompt = errors.New("prompt is required and must be a non-empty string")
	ErrEmptyInput    = errors.New("input must contain at least one non-empty string")
)

// ShowParams are the arguments of the show-model operation.
type ShowParams struct {
	Model string
}

func (p ShowParams) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return ErrMissingModel
	}
	return nil
}

// ChatParams are the arguments of the single-turn chat operation.
type ChatParams struct {
	Model  string
	Prompt string
}

func (p ChatParams) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return ErrMissingModel
	}
	if strings.TrimSpace(p.Prompt) == "" {
		return ErrMissingPrompt
	}
	return nil
}

// GenerateParams are the arguments of the completion operation.
type GenerateParams struct {
	Model  string
	Prompt string
}

func (p GenerateParams) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return ErrMissingModel
	}
	if strings.TrimSpace(p.Prompt) == "" {
		return ErrMissingPrompt
	}
	return nil
}

// EmbedParams are the arguments of the embeddings operation. Input
// always arrives as a batch; single strings are wrapped by the caller.
type EmbedParams struct {
	Model string
	Input []string
}

func (p EmbedParams) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return ErrMissingModel
	}
	if len(p.Input) == 0 {
		return ErrEmptyInput
	}
	for _, s := range p.Input {
		if strings.TrimSpace(s) == "" {
			return ErrEmptyInput
		}
	}
	return nil
}
