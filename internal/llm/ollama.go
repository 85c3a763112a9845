package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	DefaultOllamaURL            = "http://localhost:11434"
	DefaultOllamaModel          = "mistral"
	DefaultOllamaEmbeddingModel = "nomic-embed-text"
)

// OllamaClient talks to Ollama's native API. Generation is always
// non-streaming.
type OllamaClient struct {
	client         *api.Client
	model          string
	embeddingModel string
	// urlErr is returned from every call when the base URL did not parse.
	urlErr error
}

func NewOllamaClient(baseURL, model, embeddingModel string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api")
	if model == "" {
		model = DefaultOllamaModel
	}
	if embeddingModel == "" {
		embeddingModel = DefaultOllamaEmbeddingModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	c := &OllamaClient{model: model, embeddingModel: embeddingModel}
	base, err := url.Parse(baseURL)
	if err != nil {
		c.urlErr = fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
		base, _ = url.Parse(DefaultOllamaURL)
	}
	c.client = api.NewClient(base, &http.Client{Timeout: timeout})
	return c
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error) {
	if c.urlErr != nil {
		return "", c.urlErr
	}
	o := ApplyOptions(c.model, opts)
	stream := false
	req := &api.GenerateRequest{
		Model:   o.Model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: o.Options,
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", ollamaError("generate", err)
	}
	return out.String(), nil
}

func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.urlErr != nil {
		return nil, c.urlErr
	}
	resp, err := c.client.Embeddings(ctx, &api.EmbeddingRequest{Model: c.embeddingModel, Prompt: text})
	if err != nil {
		return nil, ollamaError("embeddings", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, errors.New("ollama returned an empty embedding")
	}
	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// ListModels returns the installed models as a {"models": [...]} document.
func (c *OllamaClient) ListModels(ctx context.Context) (json.RawMessage, error) {
	if c.urlErr != nil {
		return nil, c.urlErr
	}
	list, err := c.client.List(ctx)
	if err != nil {
		return nil, ollamaError("tags", err)
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func ollamaError(op string, err error) error {
	var status api.StatusError
	if errors.As(err, &status) {
		return fmt.Errorf("ollama %s error %d: %s", op, status.StatusCode, status.ErrorMessage)
	}
	return fmt.Errorf("ollama %s request failed: %w", op, err)
}
