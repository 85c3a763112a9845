package model

// MemoryContext is the coarse signal pulled out of memory text by keyword
// matching. It feeds the theme classification prompt.
type MemoryContext struct {
	Locations []string `json:"locations"`
	Keywords  []string `json:"keywords"`
	Timeframe string   `json:"timeframe"`
}

// EmptyContext returns a context with non-nil, empty lists.
func EmptyContext() MemoryContext {
	return MemoryContext{Locations: []string{}, Keywords: []string{}}
}

// ExtractedProfile is the JSON shape the profile parsing prompt asks for.
// Numeric fields are decoded leniently because models often quote them.
type ExtractedProfile struct {
	Name               *string    `json:"name"`
	BirthYear          FlexNumber `json:"birthYear"`
	CurrentAge         FlexNumber `json:"currentAge"`
	Country            *string    `json:"country"`
	ImmigrationYear    FlexNumber `json:"immigrationYear"`
	ImmigrationCountry *string    `json:"immigrationCountry"`
}

// Profile converts the extraction into a UserProfile.
func (e ExtractedProfile) Profile() UserProfile {
	return UserProfile{
		Name:               deref(e.Name),
		BirthYear:          int(e.BirthYear),
		CurrentAge:         int(e.CurrentAge),
		Country:            deref(e.Country),
		ImmigrationYear:    int(e.ImmigrationYear),
		ImmigrationCountry: deref(e.ImmigrationCountry),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
