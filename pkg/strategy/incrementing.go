package strategy

import "github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"

const (
	DefaultPriorityDelta = 1
	DefaultSearchDelta   = 1024
)

// Incrementing raises budget priority and search range at every level it
// spawns. Its defaults apply the first time it handles a node on a branch;
// below that, the values baked in by Extend are inherited instead.
type Incrementing struct {
	id            uint64
	name          string
	defaults      lorebook.Config
	priorityDelta int
	searchDelta   int
}

// Option configures an Incrementing strategy.
type Option func(*Incrementing)

// WithPriorityDelta sets the per-level budget priority increase.
func WithPriorityDelta(n int) Option {
	return func(s *Incrementing) { s.priorityDelta = n }
}

// WithSearchDelta sets the per-level search range increase.
func WithSearchDelta(n int) Option {
	return func(s *Incrementing) { s.searchDelta = n }
}

// WithDefaults layers cfg over the strategy's default configuration.
func WithDefaults(cfg lorebook.Config) Option {
	return func(s *Incrementing) { s.defaults = s.defaults.Merge(cfg) }
}

// WithName labels the strategy for logs and graphs.
func WithName(name string) Option {
	return func(s *Incrementing) { s.name = name }
}

// NewIncrementing creates a depth-incrementing strategy.
func NewIncrementing(defaults lorebook.Config, opts ...Option) *Incrementing {
	s := &Incrementing{
		id:            nextID(),
		name:          "incrementing",
		defaults:      defaults,
		priorityDelta: DefaultPriorityDelta,
		searchDelta:   DefaultSearchDelta,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Incrementing) ID() uint64 { return s.id }

// Name returns the strategy label.
func (s *Incrementing) Name() string { return s.name }

// Deltas returns the per-level priority and search range increases.
func (s *Incrementing) Deltas() (priority, search int) { return s.priorityDelta, s.searchDelta }

// Apply merges the strategy defaults under cfg. When this instance is
// already on the stack the priority and search range overrides are dropped,
// since Extend carried the incremented values down already.
func (s *Incrementing) Apply(st State, cfg lorebook.Config) lorebook.Config {
	out := s.defaults.Merge(cfg)
	if st.Applied(s) {
		out.Context.BudgetPriority = nil
		out.Entry.SearchRange = nil
	}
	return out
}

// Extend increments the resolved priority and search range.
func (s *Incrementing) Extend(st State, cfg lorebook.Config) lorebook.Config {
	ctx := s.Context(st, cfg)
	entry := s.Entry(st, cfg)

	out := cfg
	out.Context.BudgetPriority = lorebook.Ptr(ctx.BudgetPriority + s.priorityDelta)
	out.Entry.SearchRange = lorebook.Ptr(entry.SearchRange + s.searchDelta)
	return out
}

func (s *Incrementing) Context(st State, cfg lorebook.Config) lorebook.ContextConfig {
	return st.Context.With(cfg.Context)
}

func (s *Incrementing) Entry(st State, cfg lorebook.Config) lorebook.EntryConfig {
	return st.Entry.With(cfg.Entry)
}
