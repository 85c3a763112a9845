// Package timeline buckets memories by decade and timeframe and computes
// the aggregates behind the timeline view. Every function is pure: inputs
// are never modified and the same input always yields the same output.
package timeline

import (
	"sort"
	"strconv"

	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/core/years"
)

// UnknownBucket collects memories with neither a year nor a timeframe.
const UnknownBucket = "unknown"

// TopTagLimit caps the tags reported per timeframe.
const TopTagLimit = 5

// Group is one bucket of memories. Groups are returned in the order their
// keys were first encountered.
type Group struct {
	Key      string         `json:"key"`
	Memories []model.Memory `json:"memories"`
}

// Decade returns the decade label for a year, e.g. 1987 -> "1980s".
func Decade(year int) string {
	d := year / 10 * 10
	if year < 0 && year%10 != 0 {
		d -= 10
	}
	return strconv.Itoa(d) + "s"
}

// ResolveYear returns the stored year, or the rule-based year from the text
// for legacy records that were saved without one.
func ResolveYear(m model.Memory, birthYear int) (int, bool) {
	if m.Year != nil {
		return *m.Year, true
	}
	return years.Extract(m.Text, birthYear)
}

// ResolveBucket picks the bucket for m: its decade, else its timeframe, else
// UnknownBucket.
func ResolveBucket(m model.Memory, birthYear int) string {
	if y, ok := ResolveYear(m, birthYear); ok {
		return Decade(y)
	}
	if m.Timeframe != "" {
		return m.Timeframe
	}
	return UnknownBucket
}

func timeframeKey(m model.Memory) string {
	if m.Timeframe != "" {
		return m.Timeframe
	}
	return UnknownBucket
}

// GroupByDecade buckets memories with ResolveBucket.
func GroupByDecade(memories []model.Memory, birthYear int) []Group {
	return groupBy(memories, func(m model.Memory) string { return ResolveBucket(m, birthYear) })
}

// GroupByTimeframe buckets memories by their free-text timeframe.
func GroupByTimeframe(memories []model.Memory) []Group {
	return groupBy(memories, timeframeKey)
}

func groupBy(memories []model.Memory, key func(model.Memory) string) []Group {
	groups := []Group{}
	index := make(map[string]int)
	for _, m := range memories {
		k := key(m)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Memories = append(groups[i].Memories, m)
	}
	return groups
}

// Frequency counts memories per decade bucket.
func Frequency(memories []model.Memory, birthYear int) map[string]int {
	freq := make(map[string]int)
	for _, g := range GroupByDecade(memories, birthYear) {
		freq[g.Key] = len(g.Memories)
	}
	return freq
}

// TopTagsByTimeframe returns the most used tags per timeframe bucket,
// most frequent first, ties kept in first-seen order.
func TopTagsByTimeframe(memories []model.Memory) map[string][]string {
	out := make(map[string][]string)
	for _, g := range GroupByTimeframe(memories) {
		type tagCount struct {
			tag   string
			count int
		}
		var counts []tagCount
		pos := make(map[string]int)
		for _, m := range g.Memories {
			for _, tag := range m.Tags {
				if i, ok := pos[tag]; ok {
					counts[i].count++
					continue
				}
				pos[tag] = len(counts)
				counts = append(counts, tagCount{tag: tag, count: 1})
			}
		}
		sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

		top := make([]string, 0, TopTagLimit)
		for i := 0; i < len(counts) && i < TopTagLimit; i++ {
			top = append(top, counts[i].tag)
		}
		out[g.Key] = top
	}
	return out
}

// ThemesByTimeframe counts themes per timeframe bucket. Unclassified
// memories are counted under "unknown".
func ThemesByTimeframe(memories []model.Memory) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, g := range GroupByTimeframe(memories) {
		counts := make(map[string]int)
		for _, m := range g.Memories {
			counts[m.Theme.Key()]++
		}
		out[g.Key] = counts
	}
	return out
}

// ByThemeAndTimeframe nests memories by timeframe, then theme.
func ByThemeAndTimeframe(memories []model.Memory) map[string]map[string][]model.Memory {
	out := make(map[string]map[string][]model.Memory)
	for _, g := range GroupByTimeframe(memories) {
		byTheme := make(map[string][]model.Memory)
		for _, m := range g.Memories {
			byTheme[m.Theme.Key()] = append(byTheme[m.Theme.Key()], m)
		}
		out[g.Key] = byTheme
	}
	return out
}
