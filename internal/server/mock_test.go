package server

import (
	"context"
	"encoding/json"

	"github.com/agenthands/memoryvault/internal/llm"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	Models        json.RawMessage
	Prompts       []string
	OnGenerate    func()
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
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

func (m *MockLLM) ListModels(ctx context.Context) (json.RawMessage, error) {
	return m.Models, nil
}

type MockEmbedder struct {
	Vector []float32
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return m.Vector, nil
}
