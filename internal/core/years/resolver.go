package years

import "context"

// Source records which step produced a year.
type Source string

const (
	SourceNone   Source = "none"
	SourceStored Source = "stored"
	SourceRules  Source = "rules"
	SourceLLM    Source = "llm"
)

// Result is a resolved year or the explicit absence of one.
type Result struct {
	Year   int    `json:"year,omitempty"`
	Source Source `json:"source"`
}

func (r Result) OK() bool { return r.Source != SourceNone }

// Ptr returns the year as a pointer, nil when unresolved.
func (r Result) Ptr() *int {
	if !r.OK() {
		return nil
	}
	y := r.Year
	return &y
}

// Resolver chains the text rules and the LLM inferrer.
type Resolver struct {
	Inferrer *Inferrer
	// SkipRules sends every memory straight to the LLM.
	SkipRules bool
}

func NewResolver(inferrer *Inferrer) *Resolver {
	return &Resolver{Inferrer: inferrer}
}

// Resolve tries the rule chain and falls back to the LLM only when the
// rules find nothing.
func (r *Resolver) Resolve(ctx context.Context, text string, birthYear int, model string) Result {
	if !r.SkipRules {
		if y, ok := Extract(text, birthYear); ok {
			return Result{Year: y, Source: SourceRules}
		}
	}
	if y, ok := r.Inferrer.Infer(ctx, text, birthYear, model); ok {
		return Result{Year: y, Source: SourceLLM}
	}
	return Result{Source: SourceNone}
}
