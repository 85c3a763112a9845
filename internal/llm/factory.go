package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/memoryvault/internal/config"
)

// NewClient builds the generation and embedding clients for the configured
// provider. The embedder is nil for providers without an embedding API.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL)
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return c, nil, nil

	case "ollama", "":
		c := NewOllamaClient(cfg.BaseURL, cfg.Model, cfg.EmbeddingModel, cfg.Timeout.Std())
		return c, c, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
