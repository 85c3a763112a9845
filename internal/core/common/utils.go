// Package common holds helpers for reading free-text model output.
package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON extracts the outermost JSON object from an LLM answer and
// unmarshals it into T. Markdown fences and chatter around the object are
// ignored.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	end := strings.LastIndex(response, "}")
	if end < start {
		return zero, fmt.Errorf("no JSON object found in response (missing '}')")
	}

	jsonStr := response[start : end+1]
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}
	return result, nil
}

// CleanAnswer trims whitespace, surrounding quotes, backticks and markdown
// emphasis from a one-word model answer.
func CleanAnswer(response string) string {
	return strings.Trim(strings.TrimSpace(response), "\"'`*. \t\r\n")
}

// RenderPrompt replaces each {{name}} placeholder in tmpl with vars[name].
// Other text, including a literal '%', is left as written.
func RenderPrompt(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
