package model

import (
	"encoding/json"
	"strings"
)

// Theme is the thematic category of a memory. The zero value is
// Unclassified, meaning the user still has to pick one.
type Theme string

const (
	Unclassified     Theme = ""
	ImmigrantParent  Theme = "immigrant_parent"
	ImmigrantSelf    Theme = "immigrant_self"
	GeneralChildhood Theme = "general_childhood"
	FamilyHistory    Theme = "family_history"
)

// Themes lists every classified theme in declaration order.
var Themes = []Theme{ImmigrantParent, ImmigrantSelf, GeneralChildhood, FamilyHistory}

// ParseTheme normalises s and reports whether it names a known theme.
func ParseTheme(s string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Themes {
		if t == known {
			return t, true
		}
	}
	return Unclassified, false
}

// Classified reports whether t is one of the four known themes.
func (t Theme) Classified() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Key returns the grouping key used by the timeline, "unknown" when unclassified.
func (t Theme) Key() string {
	if !t.Classified() {
		return "unknown"
	}
	return string(t)
}

func (t Theme) MarshalJSON() ([]byte, error) {
	if !t.Classified() {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

func (t *Theme) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Unclassified
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t, _ = ParseTheme(s)
	return nil
}
