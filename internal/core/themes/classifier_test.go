package themes

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     model.Theme
	}{
		{"exact", "immigrant_self", model.ImmigrantSelf},
		{"mixed case", "IMMIGRANT_PARENT", model.ImmigrantParent},
		{"padded and quoted", "  \"family_history\"\n", model.FamilyHistory},
		{"not in the set", "romantic_comedy", model.Unclassified},
		{"chatty answer", "I think this is general_childhood because", model.Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := &MockLLMClient{Response: tt.response}
			c := NewClassifier(mockLLM, "")

			res := c.Classify(context.Background(), "My mom left Vietnam in a small boat", "mistral")

			assert.Equal(t, tt.want, res.Theme)
			assert.Equal(t, []string{"vietnam"}, res.Context.Locations)
			assert.Equal(t, "mistral", mockLLM.LastModel)
		})
	}
}

func TestClassify_PromptCarriesHints(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "immigrant_parent"}
	c := NewClassifier(mockLLM, "")

	c.Classify(context.Background(), "My father arrived in America with one suitcase", "")

	assert.Contains(t, mockLLM.LastPrompt, "Context hints: Locations mentioned: america, Timeframe: unknown, Key topics: father, arrived")
	assert.Contains(t, mockLLM.LastPrompt, `Memory: "My father arrived in America with one suitcase"`)
	for _, id := range model.Themes {
		assert.Contains(t, mockLLM.LastPrompt, `"`+string(id)+`"`)
	}
}

func TestClassify_TransportFailure(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("connection refused")}
	c := NewClassifier(mockLLM, "")

	res := c.Classify(context.Background(), "My mom left Vietnam", "")

	assert.Equal(t, model.Unclassified, res.Theme)
	assert.Empty(t, res.Context.Locations)
	assert.Empty(t, res.Context.Timeframe)
}

func TestClassify_BlankText(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "immigrant_self"}
	c := NewClassifier(mockLLM, "")

	res := c.Classify(context.Background(), "  \n", "")

	assert.Equal(t, model.Unclassified, res.Theme)
	assert.Equal(t, 0, mockLLM.Calls)
}

func TestCatalog(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)
	for i, d := range all {
		assert.Equal(t, model.Themes[i], d.ID)
		assert.NotEmpty(t, d.Tags)
		assert.NotEmpty(t, d.FollowUpExamples)
	}

	d, ok := Lookup(model.FamilyHistory)
	require.True(t, ok)
	assert.Equal(t, "Family History", d.Name)

	_, ok = Lookup(model.Unclassified)
	assert.False(t, ok)
	_, ok = Lookup(model.Theme("romantic_comedy"))
	assert.False(t, ok)
}

func TestFollowUp(t *testing.T) {
	d, ok := Lookup(model.ImmigrantSelf)
	require.True(t, ok)
	assert.Contains(t, d.FollowUpExamples, d.FollowUp(nil))
	assert.Equal(t, "", Definition{}.FollowUp(nil))
}
