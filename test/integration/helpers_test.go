//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/agenthands/memoryvault/internal/config"
	"github.com/agenthands/memoryvault/internal/llm"
)

// llmFromEnv builds the configured LLM clients, skipping the test when no
// Ollama (or other provider) is configured.
func llmFromEnv(t *testing.T) (llm.LLMClient, llm.EmbedderClient, *config.Config) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	if os.Getenv("LLM_BASE_URL") == "" && os.Getenv("LLM_PROVIDER") == "" {
		t.Skip("Skipping integration test: LLM_BASE_URL or LLM_PROVIDER not set")
	}

	cfg := config.Default()
	cfg.ApplyEnv()

	client, embedder, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		t.Fatalf("init llm: %v", err)
	}
	return client, embedder, cfg
}
