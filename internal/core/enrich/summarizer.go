package enrich

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/llm"
)

// DefaultSummaryPrompt uses the {{text}} placeholder.
const DefaultSummaryPrompt = `Return ONLY a brief 1-2 sentence summary of this memory. Do not include any prefix, explanation, or preamble. Just the summary itself. Keep it under 100 characters and make it engaging.

Memory:
{{text}}

Summary:`

var preambleRe = regexp.MustCompile(`(?i)^(here is|here's|this is|the summary|summary:)\s*`)

type Summarizer struct {
	LLM    llm.LLMClient
	Prompt string
	Logger *slog.Logger
}

func NewSummarizer(client llm.LLMClient, prompt string) *Summarizer {
	if prompt == "" {
		prompt = DefaultSummaryPrompt
	}
	return &Summarizer{LLM: client, Prompt: prompt, Logger: slog.Default()}
}

// Summarize returns a one-line summary of at most model.SummaryLimit
// characters. When the model fails or answers with nothing, the head of
// the text is used instead.
func (s *Summarizer) Summarize(ctx context.Context, text, modelID string) string {
	fallback := model.Truncate(strings.TrimSpace(text), model.SummaryLimit)
	if s == nil || s.LLM == nil || fallback == "" {
		return fallback
	}

	resp, err := s.LLM.Generate(ctx, renderText(s.Prompt, text), llm.WithModel(modelID))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("summary generation failed", "error", err)
		}
		return fallback
	}

	summary := strings.TrimSpace(resp)
	if summary == "" {
		return fallback
	}
	summary = preambleRe.ReplaceAllString(summary, "")
	return model.Truncate(summary, model.SummaryLimit)
}
