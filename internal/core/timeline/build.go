package timeline

import "github.com/agenthands/memoryvault/internal/core/model"

// Timeline bundles every aggregate the timeline view needs.
type Timeline struct {
	Frequency         map[string]int            `json:"frequency"`
	Chart             ChartData                 `json:"chart"`
	TagsByTimeframe   map[string][]string       `json:"tagsByTimeframe"`
	ThemesByTimeframe map[string]map[string]int `json:"themesByTimeframe"`
	// MemoriesByTimeframe nests memories by timeframe, then theme key.
	MemoriesByTimeframe map[string]map[string][]model.MemoryView `json:"memoriesByTimeframe"`
}

func Build(memories []model.Memory, birthYear int) Timeline {
	return Timeline{
		Frequency:           Frequency(memories, birthYear),
		Chart:               Chart(memories, birthYear),
		TagsByTimeframe:     TopTagsByTimeframe(memories),
		ThemesByTimeframe:   ThemesByTimeframe(memories),
		MemoriesByTimeframe: views(ByThemeAndTimeframe(memories)),
	}
}

func views(nested map[string]map[string][]model.Memory) map[string]map[string][]model.MemoryView {
	out := make(map[string]map[string][]model.MemoryView, len(nested))
	for timeframe, byTheme := range nested {
		inner := make(map[string][]model.MemoryView, len(byTheme))
		for theme, memories := range byTheme {
			vs := make([]model.MemoryView, len(memories))
			for i, m := range memories {
				vs[i] = m.View()
			}
			inner[theme] = vs
		}
		out[timeframe] = inner
	}
	return out
}
