package strategy

import "github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"

// Fixed applies the same static overrides at every depth.
type Fixed struct {
	id        uint64
	overrides lorebook.Config
}

// NewFixed creates a Fixed strategy layering overrides between the inherited
// settings and each node's own configuration.
func NewFixed(overrides lorebook.Config) *Fixed {
	return &Fixed{id: nextID(), overrides: overrides}
}

func (f *Fixed) ID() uint64 { return f.id }

// Apply returns cfg unchanged.
func (f *Fixed) Apply(_ State, cfg lorebook.Config) lorebook.Config { return cfg }

// Extend returns cfg unchanged.
func (f *Fixed) Extend(_ State, cfg lorebook.Config) lorebook.Config { return cfg }

func (f *Fixed) Context(st State, cfg lorebook.Config) lorebook.ContextConfig {
	return st.Context.With(f.overrides.Context).With(cfg.Context)
}

func (f *Fixed) Entry(st State, cfg lorebook.Config) lorebook.EntryConfig {
	return st.Entry.With(f.overrides.Entry).With(cfg.Entry)
}
