package store

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/driver"
)

// GraphStore keeps memories as :Memory nodes. Tags and the embedding are
// list properties; a missing year or theme is a missing property.
type GraphStore struct {
	Driver driver.GraphDriver
}

func NewGraphStore(ctx context.Context, d driver.GraphDriver) (*GraphStore, error) {
	if err := d.BuildIndices(ctx); err != nil {
		return nil, fmt.Errorf("failed to build indices: %w", err)
	}
	return &GraphStore{Driver: d}, nil
}

func (s *GraphStore) List(ctx context.Context) ([]model.Memory, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.ListMemoriesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}

	memories := make([]model.Memory, 0, len(res.Records))
	for _, rec := range res.Records {
		m, err := recordToMemory(rec)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, nil
}

func (s *GraphStore) Get(ctx context.Context, id string) (model.Memory, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetMemoryQuery, map[string]any{"id": id})
	if err != nil {
		return model.Memory{}, fmt.Errorf("failed to get memory: %w", err)
	}
	if len(res.Records) == 0 {
		return model.Memory{}, ErrNotFound
	}
	return recordToMemory(res.Records[0])
}

func (s *GraphStore) Put(ctx context.Context, m model.Memory) error {
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveMemoryQuery, memoryParams(m)); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}
	return nil
}

func (s *GraphStore) PutAll(ctx context.Context, memories []model.Memory) error {
	if len(memories) == 0 {
		return nil
	}
	rows := make([]map[string]any, len(memories))
	for i, m := range memories {
		rows[i] = memoryParams(m)
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveMemoriesQuery, map[string]any{"memories": rows}); err != nil {
		return fmt.Errorf("failed to save memories: %w", err)
	}
	return nil
}

func (s *GraphStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.DeleteMemoryQuery, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	return nil
}

func (s *GraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func memoryParams(m model.Memory) map[string]any {
	embedding := make([]float64, len(m.Embedding))
	for i, v := range m.Embedding {
		embedding[i] = float64(v)
	}
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}

	var year, theme any
	if m.Year != nil {
		year = int64(*m.Year)
	}
	if m.Theme.Classified() {
		theme = string(m.Theme)
	}

	return map[string]any{
		"id":         m.ID,
		"text":       m.Text,
		"summary":    m.Summary,
		"embedding":  embedding,
		"tags":       tags,
		"year":       year,
		"theme":      theme,
		"timeframe":  m.Timeframe,
		"created_at": m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func recordToMemory(rec *neo4j.Record) (model.Memory, error) {
	row := make(map[string]any, len(rec.Keys))
	for _, key := range rec.Keys {
		row[key], _ = rec.Get(key)
	}

	m := model.Memory{
		ID:        asString(row["id"]),
		Text:      asString(row["text"]),
		Summary:   asString(row["summary"]),
		Timeframe: asString(row["timeframe"]),
		Tags:      []string{},
	}
	if m.ID == "" {
		return model.Memory{}, fmt.Errorf("memory record without id")
	}

	if list, ok := row["tags"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				m.Tags = append(m.Tags, s)
			}
		}
	}
	if list, ok := row["embedding"].([]any); ok {
		m.Embedding = make([]float32, 0, len(list))
		for _, v := range list {
			if f, ok := v.(float64); ok {
				m.Embedding = append(m.Embedding, float32(f))
			}
		}
	}
	if y, ok := row["year"].(int64); ok {
		m.Year = model.YearPtr(int(y))
	}
	if t, ok := model.ParseTheme(asString(row["theme"])); ok {
		m.Theme = t
	}
	if s := asString(row["created_at"]); s != "" {
		created, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return model.Memory{}, fmt.Errorf("memory %s: bad created_at: %w", m.ID, err)
		}
		m.CreatedAt = created
	}
	return m, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
