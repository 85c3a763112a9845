package timeline

import (
	"sort"

	"github.com/agenthands/memoryvault/internal/core/model"
)

const ChartLabel = "Memories per Decade"

// Dataset mirrors the dataset object of the frontend charting library.
type Dataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     int    `json:"borderWidth"`
	BorderRadius    int    `json:"borderRadius"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Chart builds the per-decade bar series.
func Chart(memories []model.Memory, birthYear int) ChartData {
	groups := GroupByDecade(memories, birthYear)
	counts := make(map[string]int, len(groups))
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		counts[g.Key] = len(g.Memories)
		keys = append(keys, g.Key)
	}

	labels := SortBuckets(keys)
	data := make([]int, 0, len(labels))
	for _, l := range labels {
		data = append(data, counts[l])
	}
	return ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           ChartLabel,
			Data:            data,
			BackgroundColor: "rgba(102, 126, 234, 0.6)",
			BorderColor:     "rgba(102, 126, 234, 1)",
			BorderWidth:     2,
			BorderRadius:    4,
		}},
	}
}

// SortBuckets orders bucket keys by their leading integer. Keys without one
// ("unknown", "childhood") go last and keep their relative order. The input
// is not modified.
func SortBuckets(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := leadingInt(out[i])
		b, bok := leadingInt(out[j])
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		default:
			return false
		}
	})
	return out
}

// leadingInt parses the integer prefix of s, ignoring leading spaces and
// an optional sign.
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	start, n := i, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
