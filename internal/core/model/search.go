package model

import "time"

type SearchResult struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Summary    string    `json:"summary"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	Similarity float64   `json:"similarity"`
}
