package core

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agenthands/memoryvault/internal/core/model"
)

const DefaultSearchLimit = 5

// Search ranks every stored memory by cosine similarity to the query.
func (v *Vault) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if v.Embedder == nil {
		return nil, ErrNoEmbedder
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	vec, err := v.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	memories, err := v.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(memories))
	for _, m := range memories {
		view := m.View()
		results = append(results, model.SearchResult{
			ID:         view.ID,
			Text:       view.Text,
			Summary:    view.Summary,
			Tags:       view.Tags,
			CreatedAt:  view.CreatedAt,
			Similarity: CosineSimilarity(vec, m.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CosineSimilarity returns 0 for vectors of different length or zero norm.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
