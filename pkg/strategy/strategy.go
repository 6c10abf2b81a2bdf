package strategy

import (
	"sync/atomic"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
)

// Strategy governs configuration inheritance across tree depth.
type Strategy interface {
	// ID identifies this instance. It is unique per constructed strategy.
	ID() uint64
	// Apply finalizes the node's own partial configuration.
	Apply(state State, cfg lorebook.Config) lorebook.Config
	// Extend produces the configuration that seeds the children's state.
	Extend(state State, cfg lorebook.Config) lorebook.Config
	// Context resolves the presentation settings for the node.
	Context(state State, cfg lorebook.Config) lorebook.ContextConfig
	// Entry resolves the activation settings for the node.
	Entry(state State, cfg lorebook.Config) lorebook.EntryConfig
}

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }

// State is the inherited traversal state at one level of the tree.
// It is treated as a value: Descend returns a new State and never touches
// the receiver.
type State struct {
	Context lorebook.ContextConfig
	Entry   lorebook.EntryConfig
	// Stack holds the strategies of the ancestors that spawned this level,
	// outermost first.
	Stack []Strategy
	Depth int
}

// NewState returns the root state for the given resolved settings.
func NewState(ctx lorebook.ContextConfig, entry lorebook.EntryConfig) State {
	return State{Context: ctx, Entry: entry}
}

// DefaultState is NewState over the lorebook defaults.
func DefaultState() State {
	return NewState(lorebook.DefaultContext(), lorebook.DefaultEntry())
}

// Applied reports whether s already contributed to this state.
func (st State) Applied(s Strategy) bool {
	for _, prev := range st.Stack {
		if prev.ID() == s.ID() {
			return true
		}
	}
	return false
}

// Descend returns the state for the children of a node handled by s.
func (st State) Descend(s Strategy, ctx lorebook.ContextConfig, entry lorebook.EntryConfig) State {
	stack := make([]Strategy, len(st.Stack), len(st.Stack)+1)
	copy(stack, st.Stack)
	return State{
		Context: ctx,
		Entry:   entry,
		Stack:   append(stack, s),
		Depth:   st.Depth + 1,
	}
}

// Seed runs Extend and resolves the result into the children's state.
func Seed(s Strategy, st State, applied lorebook.Config) State {
	ext := s.Extend(st, applied)
	return st.Descend(s, s.Context(st, ext), s.Entry(st, ext))
}
