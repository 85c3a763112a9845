// Package signals pulls coarse context out of memory text by keyword
// matching: mentioned countries, immigration-related words and a rough
// timeframe bucket.
package signals

import (
	"fmt"
	"strings"

	"github.com/agenthands/memoryvault/internal/core/model"
)

// Countries are matched as lower-case substrings, in this order.
var Countries = []string{
	"vietnam",
	"china",
	"india",
	"mexico",
	"philippines",
	"korea",
	"japan",
	"thailand",
	"cambodia",
	"laos",
	"pakistan",
	"bangladesh",
	"colombia",
	"el salvador",
	"guatemala",
	"honduras",
	"usa",
	"america",
	"united states",
}

// ImmigrationKeywords are stems and phrases that hint at an immigration story.
var ImmigrationKeywords = []string{
	"immigr",
	"parent",
	"mom",
	"dad",
	"mother",
	"father",
	"journey",
	"arrived",
	"came to",
	"moved to",
	"left",
	"homeland",
	"country",
	"adapt",
	"culture",
	"tradition",
}

// Bucket is a named set of timeframe phrases.
type Bucket struct {
	Name     string
	Keywords []string
}

// Timeframe buckets are tested in this order and the last bucket with a
// matching phrase wins, so later buckets override earlier ones.
var Timeframes = []Bucket{
	{Name: "childhood", Keywords: []string{"childhood", "kid", "kids", "young", "school", "elementary", "middle school", "high school"}},
	{Name: "recent", Keywords: []string{"recently", "last year", "few years ago", "now", "today"}},
	{Name: "distant", Keywords: []string{"1980s", "1990s", "2000s", "decades ago", "long ago"}},
}

// Extract returns the locations, keywords and timeframe found in text.
// Blank text yields an empty context.
func Extract(text string) model.MemoryContext {
	ctx := model.EmptyContext()
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return ctx
	}

	ctx.Locations = matchAll(lower, Countries)
	ctx.Keywords = matchAll(lower, ImmigrationKeywords)
	for _, b := range Timeframes {
		if containsAny(lower, b.Keywords) {
			ctx.Timeframe = b.Name
		}
	}
	return ctx
}

// Hints renders a context as the one-line hint handed to the classifier.
func Hints(c model.MemoryContext) string {
	return fmt.Sprintf("Context hints: Locations mentioned: %s, Timeframe: %s, Key topics: %s",
		orDefault(strings.Join(c.Locations, ", "), "none"),
		orDefault(c.Timeframe, "unknown"),
		orDefault(strings.Join(c.Keywords, ", "), "none"),
	)
}

func matchAll(lower string, words []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		if strings.Contains(lower, w) {
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
