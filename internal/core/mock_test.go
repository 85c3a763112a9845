package core

import (
	"context"
	"encoding/json"

	"github.com/agenthands/memoryvault/internal/llm"
)

// MockLLM answers from ResponseQueue first, then with Response. OnGenerate,
// when set, runs before each answer.
type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	OnGenerate    func()

	Prompts []string
	Models  []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Models = append(m.Models, llm.ApplyOptions("", opts).Model)
	if m.OnGenerate != nil {
		m.OnGenerate()
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

type MockListingLLM struct {
	MockLLM
	ModelList json.RawMessage
}

func (m *MockListingLLM) ListModels(ctx context.Context) (json.RawMessage, error) {
	return m.ModelList, nil
}

// MockEmbedder returns Vectors[text], or Vector for unknown texts.
type MockEmbedder struct {
	Vector  []float32
	Vectors map[string][]float32
	Err     error
	Calls   int
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return m.Vector, nil
}
