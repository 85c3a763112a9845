package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/memoryvault/internal/core/model"
)

func newSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "memories.db")
	s := newSQLiteStore(t, path)

	first := newMemory("1", "Kites at the beach")
	first.Year = model.YearPtr(1988)
	first.Theme = model.GeneralChildhood
	first.Embedding = []float32{0.25, -1, 0.5}
	first.Timeframe = "childhood"
	require.NoError(t, s.Put(ctx, first))
	require.NoError(t, s.Put(ctx, newMemory("2", "Dad's first job")))
	require.NoError(t, s.Close(ctx))

	reopened := newSQLiteStore(t, path)
	list, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got := list[0]
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "Kites at the beach", got.Text)
	assert.Equal(t, 1988, *got.Year)
	assert.Equal(t, model.GeneralChildhood, got.Theme)
	assert.Equal(t, []float32{0.25, -1, 0.5}, got.Embedding)
	assert.Equal(t, []string{"family"}, got.Tags)
	assert.Equal(t, "childhood", got.Timeframe)
	assert.True(t, got.CreatedAt.Equal(first.CreatedAt))

	assert.Nil(t, list[1].Year)
	assert.Equal(t, model.Unclassified, list[1].Theme)
	assert.Nil(t, list[1].Embedding)
}

func TestSQLiteStore_EmptyList(t *testing.T) {
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "memories.db"))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSQLiteStore_PutReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "memories.db"))

	require.NoError(t, s.Put(ctx, newMemory("1", "old")))
	require.NoError(t, s.Put(ctx, newMemory("2", "other")))
	require.NoError(t, s.Put(ctx, newMemory("1", "new")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Text)
	assert.Equal(t, "other", list[1].Text)
}

func TestSQLiteStore_PutAll(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "memories.db"))
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

func TestSQLiteStore_ClearYearAndTheme(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "memories.db"))

	m := newMemory("1", "a")
	m.Year = model.YearPtr(1975)
	m.Theme = model.FamilyHistory
	require.NoError(t, s.Put(ctx, m))

	m.Year = nil
	m.Theme = model.Unclassified
	require.NoError(t, s.Put(ctx, m))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, got.Year)
	assert.Equal(t, model.Unclassified, got.Theme)
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "memories.db"))
	require.NoError(t, s.PutAll(ctx, []model.Memory{newMemory("1", "a"), newMemory("2", "b"), newMemory("3", "c")}))

	require.NoError(t, s.Delete(ctx, "2"))
	assert.ErrorIs(t, s.Delete(ctx, "2"), ErrNotFound)

	_, err := s.Get(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)

	list, _ := s.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)
}
