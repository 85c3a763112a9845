// Package enrich derives the secondary fields of a memory (tags, summary)
// and parses free-text profile descriptions, all through the LLM.
package enrich

import (
	"context"
	"log/slog"
	"strings"

	"github.com/agenthands/memoryvault/internal/core/common"
	"github.com/agenthands/memoryvault/internal/llm"
)

// MaxTags caps the number of generated tags.
const MaxTags = 4

// DefaultTagPrompt uses the {{text}} placeholder.
const DefaultTagPrompt = `Analyze this memory and extract 2-4 relevant category tags. Return ONLY the tags as a comma-separated list, nothing else. Examples of tags: childhood, cultural traditions, family, school, adventure, friendship, holiday, food, travel, learning, etc.

Memory:
{{text}}

Tags:`

type Tagger struct {
	LLM    llm.LLMClient
	Prompt string
	Logger *slog.Logger
}

func NewTagger(client llm.LLMClient, prompt string) *Tagger {
	if prompt == "" {
		prompt = DefaultTagPrompt
	}
	return &Tagger{LLM: client, Prompt: prompt, Logger: slog.Default()}
}

// Generate asks the model for up to MaxTags tags. Failures yield an empty
// slice; a memory is saved without tags rather than not at all.
func (t *Tagger) Generate(ctx context.Context, text, model string) []string {
	if t == nil || t.LLM == nil || strings.TrimSpace(text) == "" {
		return []string{}
	}

	resp, err := t.LLM.Generate(ctx, renderText(t.Prompt, text), llm.WithModel(model))
	if err != nil {
		if t.Logger != nil {
			t.Logger.Warn("tag generation failed", "error", err)
		}
		return []string{}
	}

	tags := NormalizeTags(strings.Split(resp, ","))
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

func renderText(prompt, text string) string {
	return common.RenderPrompt(prompt, map[string]string{"text": text})
}

// NormalizeTags lower-cases and trims tags and drops the empty ones.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
