package themes

import (
	"math/rand/v2"

	"github.com/agenthands/memoryvault/internal/core/model"
)

const GenericInitialPrompt = "Share a memory that's meaningful to you..."

type PanelNames struct {
	Builder string `json:"builder"`
	List    string `json:"list"`
}

// Definition is the static description of a theme shown by the UI and used
// to suggest tags.
type Definition struct {
	ID               model.Theme `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	HeaderSubtitle   string      `json:"headerSubtitle"`
	PanelNames       PanelNames  `json:"panelNames"`
	Tags             []string    `json:"tags"`
	InitialPrompt    string      `json:"initialPrompt"`
	FollowUpExamples []string    `json:"followUpExamples"`
}

// FollowUp picks one follow-up example.
func (d Definition) FollowUp(r *rand.Rand) string {
	if len(d.FollowUpExamples) == 0 {
		return ""
	}
	if r == nil {
		return d.FollowUpExamples[rand.IntN(len(d.FollowUpExamples))]
	}
	return d.FollowUpExamples[r.IntN(len(d.FollowUpExamples))]
}

var catalog = []Definition{
	{
		ID:             model.ImmigrantParent,
		Name:           "My Parents' Immigrant Story",
		Description:    "Preserve your parents' journey and experiences",
		HeaderSubtitle: "Preserve your family's immigrant legacy",
		PanelNames:     PanelNames{Builder: "Story Builder", List: "Family Stories"},
		Tags: []string{
			"immigration", "cultural_heritage", "family_sacrifice", "adaptation",
			"homeland", "traditions", "language_barrier", "resilience",
		},
		InitialPrompt: "Tell me about your parents' journey to a new country or a significant memory from their experience...",
		FollowUpExamples: []string{
			"What did they miss most from their homeland?",
			"How did they adapt to their new life?",
			"What traditions did they keep alive?",
			"What sacrifices did they make?",
			"How did this experience shape your family?",
		},
	},
	{
		ID:             model.ImmigrantSelf,
		Name:           "My Immigrant Story",
		Description:    "Document your own immigration journey",
		HeaderSubtitle: "Preserve your immigrant story",
		PanelNames:     PanelNames{Builder: "Memory Builder", List: "My Memories"},
		Tags: []string{
			"immigration", "culture_shock", "belonging", "identity", "resilience",
			"family", "home", "growth", "adaptation",
		},
		InitialPrompt: "Share a memory from your immigration journey or experience adapting to a new country...",
		FollowUpExamples: []string{
			"How did this moment change your perspective?",
			"Who was with you during this experience?",
			"What did you learn from this?",
			"How did you feel at that moment?",
			"What made this memory significant?",
		},
	},
	{
		ID:             model.GeneralChildhood,
		Name:           "Childhood Memories",
		Description:    "Capture your favorite childhood moments",
		HeaderSubtitle: "Preserve your precious moments",
		PanelNames:     PanelNames{Builder: "Memory Builder", List: "Memory Bank"},
		Tags: []string{
			"childhood", "family", "school", "adventure", "friendship",
			"holiday", "food", "travel", "learning", "play",
		},
		InitialPrompt: "Start by sharing a memory from your childhood that stands out to you...",
		FollowUpExamples: []string{
			"What did it smell like?",
			"Who else was there?",
			"How did it make you feel?",
			"What happened next?",
			"Why does this memory matter to you?",
		},
	},
	{
		ID:             model.FamilyHistory,
		Name:           "Family History",
		Description:    "Document your family's stories across generations",
		HeaderSubtitle: "Preserve your family's history",
		PanelNames:     PanelNames{Builder: "Story Builder", List: "Family Archive"},
		Tags: []string{
			"family", "ancestors", "traditions", "legacy", "heritage",
			"generations", "values", "stories", "milestones",
		},
		InitialPrompt: "Share a family story or memory that has been passed down or is important to your family...",
		FollowUpExamples: []string{
			"Who in your family should know this story?",
			"What makes this story important?",
			"How does this connect to your family's values?",
			"What generation does this involve?",
			"How has this story influenced your family?",
		},
	},
}

// Lookup returns the definition for t. ok is false for unclassified or
// unknown themes.
func Lookup(t model.Theme) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == t {
			return d, true
		}
	}
	return Definition{}, false
}

// All returns every definition in declaration order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}
