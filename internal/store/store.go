// Package store persists memories. The JSON file store is the default. The
// SQLite store keeps one row per memory, and the graph store keeps Memory
// nodes in Memgraph or Neo4j.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agenthands/memoryvault/internal/config"
	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/driver"
)

var ErrNotFound = errors.New("memory not found")

// Store is an ordered collection of memories keyed by ID. List returns
// memories in insertion order.
type Store interface {
	List(ctx context.Context) ([]model.Memory, error)
	Get(ctx context.Context, id string) (model.Memory, error)
	// Put inserts m or replaces the memory with the same ID.
	Put(ctx context.Context, m model.Memory) error
	// PutAll replaces several memories in one write.
	PutAll(ctx context.Context, memories []model.Memory) error
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// Open builds the store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case "json", "":
		return OpenJSON(cfg.Storage.Path)
	case "sqlite":
		return OpenSQLite(cfg.Storage.Path)
	case "memgraph", "neo4j":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			return nil, err
		}
		return NewGraphStore(ctx, d)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
