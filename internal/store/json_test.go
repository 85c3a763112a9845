package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/memoryvault/internal/core/model"
)

func newMemory(id, text string) model.Memory {
	return model.Memory{
		ID:        id,
		Text:      text,
		Summary:   text,
		Tags:      []string{"family"},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOpenJSON_MissingFile(t *testing.T) {
	s, err := OpenJSON(filepath.Join(t.TempDir(), "memories.json"))
	require.NoError(t, err)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestOpenJSON_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memories.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenJSON(path)
	assert.Error(t, err)
}

func TestJSONStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "memories.json")

	s, err := OpenJSON(path)
	require.NoError(t, err)

	first := newMemory("1", "Kites at the beach")
	first.Year = model.YearPtr(1988)
	first.Theme = model.GeneralChildhood
	require.NoError(t, s.Put(ctx, first))
	require.NoError(t, s.Put(ctx, newMemory("2", "Dad's first job")))

	reopened, err := OpenJSON(path)
	require.NoError(t, err)
	list, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, 1988, *list[0].Year)
	assert.Equal(t, model.GeneralChildhood, list[0].Theme)
	assert.Nil(t, list[1].Year)
	assert.Equal(t, model.Unclassified, list[1].Theme)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestJSONStore_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memories.json")
	s, err := OpenJSON(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), newMemory("1", "text")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Nil(t, raw[0]["year"])
	assert.Nil(t, raw[0]["theme"])
	assert.Equal(t, "2024-05-01T12:00:00Z", raw[0]["createdAt"])
	assert.Contains(t, string(data), "\n  {")
}

func TestJSONStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	s, err := OpenJSON(filepath.Join(t.TempDir(), "memories.json"))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, newMemory("1", "old")))
	require.NoError(t, s.Put(ctx, newMemory("2", "other")))
	require.NoError(t, s.Put(ctx, newMemory("1", "new")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Text)
	assert.Equal(t, "other", list[1].Text)
}

func TestJSONStore_PutAll(t *testing.T) {
	ctx := context.Background()
	s, err := OpenJSON(filepath.Join(t.TempDir(), "memories.json"))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, newMemory("1", "a")))

	updated := newMemory("1", "a")
	updated.Year = model.YearPtr(1990)
	require.NoError(t, s.PutAll(ctx, []model.Memory{updated, newMemory("2", "b")}))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1990, *got.Year)

	list, _ := s.List(ctx)
	assert.Len(t, list, 2)
}

func TestJSONStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, err := OpenJSON(filepath.Join(t.TempDir(), "memories.json"))
	require.NoError(t, err)
	require.NoError(t, s.PutAll(ctx, []model.Memory{newMemory("1", "a"), newMemory("2", "b"), newMemory("3", "c")}))

	require.NoError(t, s.Delete(ctx, "2"))
	assert.ErrorIs(t, s.Delete(ctx, "2"), ErrNotFound)

	_, err = s.Get(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)

	list, _ := s.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)
}

func TestJSONStore_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	s, err := OpenJSON(filepath.Join(t.TempDir(), "memories.json"))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, newMemory("1", "a")))

	list, _ := s.List(ctx)
	list[0].Text = "changed"

	got, _ := s.Get(ctx, "1")
	assert.Equal(t, "a", got.Text)
}
