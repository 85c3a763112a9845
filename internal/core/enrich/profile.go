package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/memoryvault/internal/core/common"
	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/llm"
)

var ErrEmptyProfileText = errors.New("profile text is required")

// DefaultProfilePrompt uses the {{text}} placeholder.
const DefaultProfilePrompt = `Extract personal information from this text and return ONLY a JSON object (no markdown, no explanation):
{
  "name": "person's name or null",
  "birthYear": number or null,
  "currentAge": number or null,
  "country": "current country or null",
  "immigrationYear": number or null,
  "immigrationCountry": "country they immigrated from or null"
}

Text: "{{text}}"

Return ONLY valid JSON, nothing else.`

// ProfileParser turns a free-text self description into a UserProfile.
type ProfileParser struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewProfileParser(client llm.LLMClient, prompt string) *ProfileParser {
	if prompt == "" {
		prompt = DefaultProfilePrompt
	}
	return &ProfileParser{LLM: client, Prompt: prompt}
}

// Parse extracts the profile. Unlike tags and summaries the caller needs
// to know it failed, so the user can fill the form by hand.
func (p *ProfileParser) Parse(ctx context.Context, text, modelID string) (*model.UserProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyProfileText
	}

	resp, err := p.LLM.Generate(ctx, renderText(p.Prompt, text), llm.WithModel(modelID))
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile: %w", err)
	}

	extracted, err := common.ParseJSON[model.ExtractedProfile](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile := extracted.Profile()
	return &profile, nil
}
