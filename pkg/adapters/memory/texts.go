package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// Texts implements ports.TextSource in memory.
// Safe for concurrent use.
type Texts struct {
	data map[string][]string
	mu   sync.RWMutex
}

// NewTexts creates a text source seeded with data.
func NewTexts(data map[string][]string) *Texts {
	t := &Texts{data: make(map[string][]string, len(data))}
	for ref, blocks := range data {
		t.data[ref] = slices.Clone(blocks)
	}
	return t
}

// Set stores blocks under ref, replacing any previous value.
func (t *Texts) Set(ref string, blocks ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[ref] = slices.Clone(blocks)
}

// Text returns a copy of the blocks stored under ref.
func (t *Texts) Text(ctx context.Context, ref string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	blocks, ok := t.data[ref]
	if !ok {
		return nil, fmt.Errorf("text %q: %w", ref, ports.ErrNotFound)
	}
	return slices.Clone(blocks), nil
}
