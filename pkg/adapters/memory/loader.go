package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// Loader implements ports.TreeLoader over a project held in memory.
type Loader struct {
	project ports.Project
}

// NewLoader creates a Loader serving p. The project is copied; later changes
// to p are not observed.
func NewLoader(p ports.Project) *Loader {
	p.Entries = slices.Clone(p.Entries)
	return &Loader{project: p}
}

// Load returns a copy of the held project.
func (l *Loader) Load(ctx context.Context) (*ports.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	p := l.project
	p.Entries = slices.Clone(l.project.Entries)
	return &p, nil
}
