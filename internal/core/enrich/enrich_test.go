package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/memoryvault/internal/core/model"
)

func TestTagger_Generate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{"plain list", "childhood, Family, food", []string{"childhood", "family", "food"}},
		{"caps at four", "a, b, c, d, e, f", []string{"a", "b", "c", "d"}},
		{"drops empties", " school ,, ,Friendship\n", []string{"school", "friendship"}},
		{"blank answer", "   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockLLMClient{Response: tt.response}
			tagger := NewTagger(mock, "")

			got := tagger.Generate(context.Background(), "We flew kites on the beach", "mistral")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "mistral", mock.LastModel)
			assert.Contains(t, mock.LastPrompt, "We flew kites on the beach")
		})
	}
}

func TestTagger_Failure(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("connection refused")}
	got := NewTagger(mock, "").Generate(context.Background(), "text", "")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTagger_BlankText(t *testing.T) {
	mock := &MockLLMClient{Response: "a, b"}
	got := NewTagger(mock, "").Generate(context.Background(), "  ", "")

	assert.Empty(t, got)
	assert.Equal(t, 0, mock.Calls)
}

func TestCustomPromptKeepsPercentSigns(t *testing.T) {
	mock := &MockLLMClient{Response: "a, b"}
	NewTagger(mock, "Tag this (100% honest): {{text}}").Generate(context.Background(), "We won 3-0", "")
	assert.Equal(t, "Tag this (100% honest): We won 3-0", mock.LastPrompt)

	NewSummarizer(mock, "Summarise {{text}} in 50% fewer words").Summarize(context.Background(), "the fair", "")
	assert.Equal(t, "Summarise the fair in 50% fewer words", mock.LastPrompt)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"travel", "new york"}, NormalizeTags([]string{" Travel ", "", "New York"}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestSummarizer_Summarize(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"clean", "A windy day of kite flying.", "A windy day of kite flying."},
		{"here is preamble", "Here is a windy day of kite flying.", "a windy day of kite flying."},
		{"summary label", "Summary: Kites at the beach.", "Kites at the beach."},
		{"case insensitive", "HERE'S kites at the beach", "kites at the beach"},
		{"empty falls back to text", "", "We flew kites on the beach"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockLLMClient{Response: tt.response}
			got := NewSummarizer(mock, "").Summarize(context.Background(), "We flew kites on the beach", "mistral")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizer_Truncates(t *testing.T) {
	mock := &MockLLMClient{Response: strings.Repeat("x", 400)}
	got := NewSummarizer(mock, "").Summarize(context.Background(), "text", "")
	assert.Len(t, got, model.SummaryLimit)
}

func TestSummarizer_FailureFallsBackToText(t *testing.T) {
	text := strings.Repeat("y", 200)
	mock := &MockLLMClient{Err: errors.New("timeout")}

	got := NewSummarizer(mock, "").Summarize(context.Background(), text, "")
	assert.Equal(t, strings.Repeat("y", model.SummaryLimit), got)
}

func TestProfileParser_Parse(t *testing.T) {
	mock := &MockLLMClient{Response: "Sure! ```json\n" + `{
  "name": "Lan",
  "birthYear": "1976",
  "currentAge": 48,
  "country": "USA",
  "immigrationYear": 1985,
  "immigrationCountry": null
}` + "\n```"}

	profile, err := NewProfileParser(mock, "").Parse(context.Background(), "I'm Lan, born in 1976...", "mistral")
	require.NoError(t, err)
	assert.Equal(t, "Lan", profile.Name)
	assert.Equal(t, 1976, profile.BirthYear)
	assert.Equal(t, 48, profile.CurrentAge)
	assert.Equal(t, "USA", profile.Country)
	assert.Equal(t, 1985, profile.ImmigrationYear)
	assert.Equal(t, "", profile.ImmigrationCountry)
	assert.Contains(t, mock.LastPrompt, "I'm Lan, born in 1976...")
}

func TestProfileParser_Errors(t *testing.T) {
	_, err := NewProfileParser(&MockLLMClient{}, "").Parse(context.Background(), " ", "")
	assert.ErrorIs(t, err, ErrEmptyProfileText)

	_, err = NewProfileParser(&MockLLMClient{Response: "I could not find anything"}, "").Parse(context.Background(), "hello", "")
	assert.Error(t, err)

	_, err = NewProfileParser(&MockLLMClient{Err: errors.New("down")}, "").Parse(context.Background(), "hello", "")
	assert.ErrorContains(t, err, "down")
}
