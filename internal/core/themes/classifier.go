// Package themes holds the theme catalogue and the LLM-backed classifier
// that assigns a memory to one of the four themes.
package themes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/agenthands/memoryvault/internal/core/common"
	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/core/signals"
	"github.com/agenthands/memoryvault/internal/llm"
)

// DefaultPrompt uses the placeholders {{hints}} and {{text}}.
const DefaultPrompt = `Analyze this memory and classify it into ONE of these themes:

- "immigrant_parent": About parents' immigration journey, cultural heritage, family sacrifice, adaptation, homeland, traditions
- "immigrant_self": About personal immigration experience, identity, belonging, culture shock, resilience, growth
- "general_childhood": General childhood memories, school, friends, play, adventures, family moments
- "family_history": Multi-generational family stories, ancestors, legacy, traditions, family values

{{hints}}

Memory: "{{text}}"

Return ONLY the theme ID (e.g., "immigrant_parent"), nothing else. No explanation, just the ID.`

// Result is the classifier outcome. Theme is model.Unclassified whenever
// the model could not be reached or answered outside the closed set.
type Result struct {
	Theme   model.Theme         `json:"theme"`
	Context model.MemoryContext `json:"context"`
}

type Classifier struct {
	LLM    llm.LLMClient
	Prompt string
	Logger *slog.Logger
}

func NewClassifier(client llm.LLMClient, prompt string) *Classifier {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Classifier{
		LLM:    client,
		Prompt: prompt,
		Logger: slog.Default(),
	}
}

// Classify never fails: an unclassified result means the user should pick.
func (c *Classifier) Classify(ctx context.Context, text, modelID string) Result {
	if strings.TrimSpace(text) == "" || c.LLM == nil {
		return Result{Context: model.EmptyContext()}
	}

	hints := signals.Extract(text)
	resp, err := c.LLM.Generate(ctx, c.BuildPrompt(text, hints), llm.WithModel(modelID))
	if err != nil {
		c.logger().Warn("theme classification failed", "error", err)
		return Result{Context: model.EmptyContext()}
	}

	theme, ok := model.ParseTheme(common.CleanAnswer(resp))
	if !ok {
		c.logger().Debug("invalid theme from model", "answer", strings.TrimSpace(resp))
	}
	return Result{Theme: theme, Context: hints}
}

func (c *Classifier) BuildPrompt(text string, hints model.MemoryContext) string {
	prompt := c.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return common.RenderPrompt(prompt, map[string]string{
		"hints": signals.Hints(hints),
		"text":  text,
	})
}

func (c *Classifier) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
