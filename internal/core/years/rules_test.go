package years

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		birthYear int
		want      int
		wantOK    bool
	}{
		{"explicit year", "The summer of 1995 at grandma's", 1980, 1995, true},
		{"explicit year without birth year", "We moved in 2003", 0, 2003, true},
		{"first explicit year wins", "We left in 2003 and came back in 1998", 0, 2003, true},
		{"explicit year beats age phrase", "I was 10 in 1992", 1980, 1992, true},
		{"age phrase", "I was 10 years old", 1980, 1990, true},
		{"when I was", "when I was 7 we got a dog", 1980, 1987, true},
		{"around", "Around 12 I learned to swim", 1980, 1992, true},
		{"age out of range", "my great-grandmother was 150 when she passed", 1980, 0, false},
		{"zero age falls through to grade", "I was 0 and in kindergarten", 1980, 1985, true},
		{"elementary", "in elementary school", 1980, 1988, true},
		{"primary", "Primary school lunches", 1980, 1988, true},
		{"kindergarten", "My kindergarten teacher", 1980, 1985, true},
		{"middle school", "middle school band", 1980, 1992, true},
		{"junior high", "junior high school dance", 1980, 1992, true},
		{"high school", "high school graduation", 1980, 1995, true},
		{"grade number", "grade 3", 1980, 1988, true},
		{"grade number double digit", "My grade 11 prom", 1980, 1996, true},
		{"category order beats text order", "After high school I still thought about kindergarten", 1980, 1985, true},
		{"no birth year age phrase", "I was 10 years old", 0, 0, false},
		{"no birth year grade", "grade 3", 0, 0, false},
		{"nothing to go on", "We ate dumplings on the porch", 1980, 0, false},
		{"out of range explicit year", "Built in 1899", 0, 0, false},
		{"year inside a longer number", "Order 119950 arrived", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text, tt.birthYear)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "when I was 9 in elementary school"
	first, _ := Extract(text, 1976)
	for i := 0; i < 10; i++ {
		got, ok := Extract(text, 1976)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestRuleOrder(t *testing.T) {
	var names []string
	for _, r := range rules {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"explicit-year", "age-phrase", "school-grade"}, names)
	assert.False(t, rules[0].needsBirthYear)
}
