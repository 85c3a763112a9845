package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestParseJSON(t *testing.T) {
	resp := "Sure! Here you go:\n```json\n{\"name\": \"Lan\", \"age\": 48}\n```"

	got, err := ParseJSON[sample](resp)
	require.NoError(t, err)
	assert.Equal(t, "Lan", got.Name)
	assert.Equal(t, 48, got.Age)
}

func TestParseJSON_NoObject(t *testing.T) {
	_, err := ParseJSON[sample]("I could not find anything")
	assert.Error(t, err)

	_, err = ParseJSON[sample]("} backwards {")
	assert.Error(t, err)
}

func TestCleanAnswer(t *testing.T) {
	assert.Equal(t, "immigrant_self", CleanAnswer("  \"immigrant_self\"\n"))
	assert.Equal(t, "family_history", CleanAnswer("`family_history`."))
	assert.Equal(t, "", CleanAnswer("   "))
}

func TestRenderPrompt(t *testing.T) {
	got := RenderPrompt("Rate {{text}} from 0% to 100% ({{text}}, {{missing}})", map[string]string{
		"text": "a 50% {{text}} day",
	})

	assert.Equal(t, "Rate a 50% {{text}} day from 0% to 100% (a 50% {{text}} day, {{missing}})", got)
}
