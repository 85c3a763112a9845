// Package years turns memory text into a best-effort calendar year, first
// with deterministic text rules and then, if those fail, with an LLM.
package years

import (
	"regexp"
	"strconv"
)

var (
	explicitYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	agePhraseRe    = regexp.MustCompile(`(?i)\b(i was|was|age|aged|when i was|at age|around|about)\s+(\d+)\b`)
)

// rule is one step of the extraction chain.
type rule struct {
	name           string
	needsBirthYear bool
	apply          func(text string, birthYear int) (int, bool)
}

// rules run in order and the first success wins. Rules that need a birth
// year are skipped, and so is everything after them, when none is known.
var rules = []rule{
	{name: "explicit-year", apply: explicitYear},
	{name: "age-phrase", needsBirthYear: true, apply: agePhrase},
	{name: "school-grade", needsBirthYear: true, apply: schoolGrade},
}

// gradeRule maps a schooling phrase to an approximate age.
type gradeRule struct {
	pattern *regexp.Regexp
	age     func(match []string) int
}

// grades are tried in declaration order; the first category present in the
// text decides the age.
var grades = []gradeRule{
	{pattern: regexp.MustCompile(`(?i)\b(kindergarten|preschool)\b`), age: fixedAge(5)},
	{pattern: regexp.MustCompile(`(?i)\b(elementary|primary)\b`), age: fixedAge(8)},
	{pattern: regexp.MustCompile(`(?i)\b(middle|junior high)\b`), age: fixedAge(12)},
	{pattern: regexp.MustCompile(`(?i)\bhigh school\b`), age: fixedAge(15)},
	{pattern: regexp.MustCompile(`(?i)\bgrade\s+(\d+)\b`), age: gradeNumberAge},
}

// Extract applies the rule chain to text. birthYear <= 0 means unknown, in
// which case only an explicit year in the text can produce a result.
func Extract(text string, birthYear int) (int, bool) {
	for _, r := range rules {
		if r.needsBirthYear && birthYear <= 0 {
			return 0, false
		}
		if y, ok := r.apply(text, birthYear); ok {
			return y, true
		}
	}
	return 0, false
}

func explicitYear(text string, _ int) (int, bool) {
	m := explicitYearRe.FindString(text)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// agePhrase only looks at the first age phrase in the text.
func agePhrase(text string, birthYear int) (int, bool) {
	m := agePhraseRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	age, err := strconv.Atoi(m[2])
	if err != nil || age <= 0 || age >= 150 {
		return 0, false
	}
	return birthYear + age, true
}

func schoolGrade(text string, birthYear int) (int, bool) {
	for _, g := range grades {
		if m := g.pattern.FindStringSubmatch(text); m != nil {
			return birthYear + g.age(m), true
		}
	}
	return 0, false
}

func fixedAge(age int) func([]string) int {
	return func([]string) int { return age }
}

func gradeNumberAge(m []string) int {
	n, _ := strconv.Atoi(m[1])
	return n + 5
}
