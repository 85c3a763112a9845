package llm

import (
	"context"
	"encoding/json"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ModelLister is implemented by providers that can enumerate their models.
type ModelLister interface {
	ListModels(ctx context.Context) (json.RawMessage, error)
}

// GenerateOptions are the per-call overrides a caller may request.
type GenerateOptions struct {
	Model   string
	Options map[string]any
}

type GenerateOption func(*GenerateOptions)

// WithModel selects a model for a single call. Empty means the client default.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithOptions passes provider-specific sampling options (Ollama only).
func WithOptions(options map[string]any) GenerateOption {
	return func(o *GenerateOptions) {
		o.Options = options
	}
}

// ApplyOptions folds opts over the client's default model.
func ApplyOptions(defaultModel string, opts []GenerateOption) GenerateOptions {
	o := GenerateOptions{Model: defaultModel}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
