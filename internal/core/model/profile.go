package model

import "time"

// UserProfile carries the sparse personal data that anchors relative age
// language ("when I was 10") to calendar years. Inference only reads it.
type UserProfile struct {
	Name               string     `json:"name"`
	BirthDate          *time.Time `json:"birthDate,omitempty"`
	BirthYear          int        `json:"birthYear,omitempty"`
	CurrentAge         int        `json:"currentAge,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	Country            string     `json:"country"`
	ImmigrationYear    int        `json:"immigrationYear,omitempty"`
	ImmigrationCountry string     `json:"immigrationCountry"`
	CompletedProfile   bool       `json:"completedProfile"`
}

// Year returns the birth year, or 0 when the profile does not know it.
func (p UserProfile) Year() int {
	if p.BirthYear > 0 {
		return p.BirthYear
	}
	if p.BirthDate != nil && !p.BirthDate.IsZero() {
		return p.BirthDate.Year()
	}
	return 0
}
