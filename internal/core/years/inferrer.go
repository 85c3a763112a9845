package years

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agenthands/memoryvault/internal/core/common"
	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/llm"
)

// The prompt asks for a year no earlier than MinPromptAge years after
// birth and no later than the current year. The parser applies its own,
// wider sanity window [MinYear, MaxYear]. The two are independent.
const (
	MinPromptAge = 3
	MinYear      = 1900
	MaxYear      = 2100
)

// DefaultPrompt uses the placeholders {{birth_year}}, {{age}},
// {{current_year}}, {{text}} and {{earliest_year}}.
const DefaultPrompt = `You are helping infer the year a memory took place based on context clues and the person's age.

User's birth year: {{birth_year}}
User's current age: {{age}}
Current year: {{current_year}}
Memory text: "{{text}}"

IMPORTANT CONSTRAINTS:
- Memories can only occur when the user was at least 3 years old (earliest possible year: {{earliest_year}})
- Memories cannot occur in the future
- Memories cannot occur when the user was younger than the context suggests

Based on the memory text and the user's age, infer what year this memory most likely occurred. Consider:
- Any explicit years mentioned
- Age references ("I was 10", "when I was young", etc.)
- School grades ("elementary school", "high school", etc.)
- Life events ("when I first moved", "during college", etc.)
- Time periods ("in the 90s", "back then", etc.)

Return ONLY a single 4-digit year (e.g., 1995). The year must be between {{earliest_year}} and {{current_year}}. If you cannot determine a valid year, return "unknown".`

var answerYearRe = regexp.MustCompile(`\*?\*?(19|20)\d{2}\*?\*?`)

// Inferrer asks an LLM for the year of a memory. Every call to Infer makes
// exactly one request; pacing bulk calls is up to the caller.
type Inferrer struct {
	LLM    llm.LLMClient
	Prompt string
	Model  string
	Now    func() time.Time
	Logger *slog.Logger
}

func NewInferrer(client llm.LLMClient, prompt string) *Inferrer {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Inferrer{
		LLM:    client,
		Prompt: prompt,
		Now:    time.Now,
		Logger: slog.Default(),
	}
}

// Infer returns the year the model settles on. Blank text, a missing birth
// year, a failed call or an unusable answer all yield ok == false.
func (i *Inferrer) Infer(ctx context.Context, text string, birthYear int, modelID string) (int, bool) {
	if i == nil || i.LLM == nil || strings.TrimSpace(text) == "" || birthYear <= 0 {
		return 0, false
	}
	if modelID == "" {
		modelID = i.Model
	}

	resp, err := i.LLM.Generate(ctx, i.BuildPrompt(text, birthYear), llm.WithModel(modelID))
	if err != nil {
		i.logger().Warn("year inference failed", "error", err)
		return 0, false
	}
	year, ok := ParseYear(resp)
	if !ok {
		i.logger().Debug("no year in model answer", "answer", model.Truncate(resp, 80))
	}
	return year, ok
}

// BuildPrompt renders the prompt for text using the inferrer's clock.
func (i *Inferrer) BuildPrompt(text string, birthYear int) string {
	now := time.Now
	if i.Now != nil {
		now = i.Now
	}
	current := now().Year()
	prompt := i.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return common.RenderPrompt(prompt, map[string]string{
		"birth_year":    strconv.Itoa(birthYear),
		"age":           strconv.Itoa(current - birthYear),
		"current_year":  strconv.Itoa(current),
		"text":          text,
		"earliest_year": strconv.Itoa(birthYear + MinPromptAge),
	})
}

// ParseYear reads a year out of a free-text answer. Answers mentioning
// "unknown" never yield a year, and years outside [MinYear, MaxYear] are
// rejected.
func ParseYear(resp string) (int, bool) {
	resp = strings.TrimSpace(resp)
	if resp == "" || strings.Contains(strings.ToLower(resp), "unknown") {
		return 0, false
	}
	m := answerYearRe.FindString(resp)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(strings.ReplaceAll(m, "*", ""))
	if err != nil || year < MinYear || year > MaxYear {
		return 0, false
	}
	return year, true
}

func (i *Inferrer) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.Default()
	}
	return i.Logger
}
