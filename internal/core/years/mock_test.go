package years

import (
	"context"

	"github.com/agenthands/memoryvault/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error

	Calls   int
	Prompts []string
	Models  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	m.Models = append(m.Models, llm.ApplyOptions("", opts).Model)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
