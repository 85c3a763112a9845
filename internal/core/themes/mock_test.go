package themes

import (
	"context"

	"github.com/agenthands/memoryvault/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error

	Calls      int
	LastPrompt string
	LastModel  string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastModel = llm.ApplyOptions("", opts).Model
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
