package dsl

import (
	"errors"
	"fmt"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/adapters/memory"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
)

// Book manages the tree construction.
type Book struct {
	project ports.Project
	roots   []*EntryBuilder
	byName  map[string]*EntryBuilder
}

// New creates a new book. The name is used as the output file name.
func New(name string) *Book {
	return &Book{
		project: ports.Project{Name: name},
		byName:  make(map[string]*EntryBuilder),
	}
}

// Add creates a new root entry.
// If a root entry with that name already exists, it returns the existing builder.
func (b *Book) Add(name string) *EntryBuilder {
	if eb, ok := b.byName[name]; ok {
		return eb
	}
	eb := Entry(name)
	b.byName[name] = eb
	b.roots = append(b.roots, eb)
	return eb
}

// Strategy sets the root strategy.
func (b *Book) Strategy(s strategy.Strategy) *Book {
	b.project.Strategy = s
	return b
}

// Config merges root overrides. Later calls win.
func (b *Book) Config(cfg lorebook.Config) *Book {
	b.project.Overrides = b.project.Overrides.Merge(cfg)
	return b
}

// BaseOp sets the operator root entries inherit.
func (b *Book) BaseOp(op phrase.Op) *Book {
	b.project.BaseOp = op
	return b
}

// Reversed emits records in reverse document order.
func (b *Book) Reversed() *Book {
	b.project.Reversed = true
	return b
}

// OrderByKeyLocations sets the lorebook setting of the same name.
func (b *Book) OrderByKeyLocations(v bool) *Book {
	b.project.Settings.OrderByKeyLocations = v
	return b
}

// Project assembles the project without validation.
func (b *Book) Project() ports.Project {
	p := b.project
	p.Entries = make([]builder.Entry, 0, len(b.roots))
	for _, eb := range b.roots {
		p.Entries = append(p.Entries, eb.Build())
	}
	return p
}

// Build compiles the tree into a memory Loader.
func (b *Book) Build() (*memory.Loader, error) {
	p := b.Project()
	for i, e := range p.Entries {
		if err := checkNames(e, fmt.Sprintf("entries[%d]", i)); err != nil {
			return nil, fmt.Errorf("failed to build book %q: %w", p.Name, err)
		}
	}
	return memory.NewLoader(p), nil
}

var errMissingName = errors.New("entry missing name")

func checkNames(e builder.Entry, path string) error {
	if e.Name == "" {
		return fmt.Errorf("%s: %w", path, errMissingName)
	}
	for i, sub := range e.SubEntries {
		if err := checkNames(sub, fmt.Sprintf("%s.subEntries[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}
