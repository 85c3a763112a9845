package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agenthands/memoryvault/internal/core/model"
)

// JSONStore keeps every memory in memory and rewrites the whole file on
// each mutation. The file is a pretty-printed JSON array.
type JSONStore struct {
	mu       sync.RWMutex
	path     string
	memories []model.Memory
}

// OpenJSON loads path. A missing file is an empty collection.
func OpenJSON(path string) (*JSONStore, error) {
	s := &JSONStore{path: path, memories: []model.Memory{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read memories: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.memories); err != nil {
		return nil, fmt.Errorf("unmarshal memories: %w", err)
	}
	if s.memories == nil {
		s.memories = []model.Memory{}
	}
	return s, nil
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) List(ctx context.Context) ([]model.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Memory, len(s.memories))
	copy(out, s.memories)
	return out, nil
}

func (s *JSONStore) Get(ctx context.Context, id string) (model.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.memories[i], nil
	}
	return model.Memory{}, ErrNotFound
}

func (s *JSONStore) Put(ctx context.Context, m model.Memory) error {
	return s.PutAll(ctx, []model.Memory{m})
}

func (s *JSONStore) PutAll(ctx context.Context, memories []model.Memory) error {
	if len(memories) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Memory, len(s.memories), len(s.memories)+len(memories))
	copy(next, s.memories)
	for _, m := range memories {
		replaced := false
		for i := range next {
			if next[i].ID == m.ID {
				next[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			next = append(next, m)
		}
	}
	return s.commit(next)
}

func (s *JSONStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	next := make([]model.Memory, 0, len(s.memories)-1)
	next = append(next, s.memories[:i]...)
	next = append(next, s.memories[i+1:]...)
	return s.commit(next)
}

func (s *JSONStore) Close(ctx context.Context) error { return nil }

func (s *JSONStore) index(id string) int {
	for i := range s.memories {
		if s.memories[i].ID == id {
			return i
		}
	}
	return -1
}

// commit writes next to disk and only then makes it the current state.
// Callers hold the write lock.
func (s *JSONStore) commit(next []model.Memory) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memories: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create memories dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write memories tmp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename memories: %w", err)
	}

	s.memories = next
	return nil
}
