// Package model defines the memory vault's core data types.
package model

import (
	"time"
)

// Memory is a single journal entry together with the fields derived from
// its text.
type Memory struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	Embedding []float32 `json:"embedding,omitempty"`
	Tags      []string  `json:"tags"`
	Year      *int      `json:"year"`
	Theme     Theme     `json:"theme"`
	Timeframe string    `json:"timeframe,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasYear reports whether a year has been stored for the memory.
func (m *Memory) HasYear() bool {
	return m.Year != nil
}

// YearPtr returns a pointer to a copy of y.
func YearPtr(y int) *int {
	return &y
}

// MemoryView is the memory as returned to API clients, without the embedding.
type MemoryView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	Tags      []string  `json:"tags"`
	Year      *int      `json:"year"`
	Theme     Theme     `json:"theme"`
	Timeframe string    `json:"timeframe,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// View strips the embedding and fills in the defaults legacy records lack.
func (m Memory) View() MemoryView {
	summary := m.Summary
	if summary == "" {
		summary = Truncate(m.Text, SummaryLimit)
	}
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return MemoryView{
		ID:        m.ID,
		Text:      m.Text,
		Summary:   summary,
		Tags:      tags,
		Year:      m.Year,
		Theme:     m.Theme,
		Timeframe: m.Timeframe,
		CreatedAt: m.CreatedAt,
	}
}

// SummaryLimit caps generated and fallback summaries.
const SummaryLimit = 150

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
