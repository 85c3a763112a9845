//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/driver"
	"github.com/agenthands/memoryvault/internal/store"
)

func TestGraphStoreRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	ctx := context.Background()

	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), nil)
	require.NoError(t, err)

	s, err := store.NewGraphStore(ctx, d)
	require.NoError(t, err)
	defer s.Close(ctx)

	id := uuid.NewString()
	m := model.Memory{
		ID:        id,
		Text:      "Lunar New Year at grandma's",
		Summary:   "Lunar New Year",
		Tags:      []string{"holiday", "family"},
		Embedding: []float32{0.25, 0.5},
		Year:      model.YearPtr(1986),
		Theme:     model.FamilyHistory,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, s.Put(ctx, m))
	defer s.Delete(ctx, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, m.Text, got.Text)
	assert.Equal(t, m.Tags, got.Tags)
	assert.Equal(t, m.Embedding, got.Embedding)
	assert.Equal(t, 1986, *got.Year)
	assert.Equal(t, model.FamilyHistory, got.Theme)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))

	m.Year = nil
	require.NoError(t, s.PutAll(ctx, []model.Memory{m}))
	got, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Year)
}
