package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// Store implements ports.LorebookStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Write stores a copy of data under name.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return errors.New("lorebook name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = slices.Clone(data)
	return nil
}

// Read returns a copy so callers can't mutate the stored bytes.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("lorebook %q: %w", name, ports.ErrNotFound)
	}
	return slices.Clone(data), nil
}

// List returns the stored names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
