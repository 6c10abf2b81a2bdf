package strategy

import (
	"testing"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_DescendCopies(t *testing.T) {
	a := NewFixed(lorebook.Config{})
	b := NewFixed(lorebook.Config{})

	root := DefaultState()
	one := root.Descend(a, root.Context, root.Entry)
	two := one.Descend(b, one.Context, one.Entry)

	assert.Empty(t, root.Stack)
	assert.Equal(t, 0, root.Depth)
	require.Len(t, one.Stack, 1)
	assert.Equal(t, 1, one.Depth)
	require.Len(t, two.Stack, 2)
	assert.Equal(t, 2, two.Depth)

	assert.True(t, two.Applied(a))
	assert.True(t, two.Applied(b))
	assert.False(t, one.Applied(b))
}

func TestFixed(t *testing.T) {
	s := NewFixed(lorebook.Config{
		Context: lorebook.ContextOverride{BudgetPriority: lorebook.Ptr(-100), Prefix: lorebook.Ptr("> ")},
	})
	st := DefaultState()
	cfg := lorebook.Config{Context: lorebook.ContextOverride{Prefix: lorebook.Ptr("# ")}}

	t.Run("apply and extend are identity", func(t *testing.T) {
		assert.Equal(t, cfg, s.Apply(st, cfg))
		assert.Equal(t, cfg, s.Extend(st, cfg))
	})

	t.Run("node overrides win over static overrides", func(t *testing.T) {
		ctx := s.Context(st, cfg)
		assert.Equal(t, "# ", ctx.Prefix)
		assert.Equal(t, -100, ctx.BudgetPriority)
		assert.Equal(t, lorebook.DefaultContext().TokenBudget, ctx.TokenBudget)
	})

	t.Run("same overrides at every depth", func(t *testing.T) {
		child := Seed(s, st, s.Apply(st, lorebook.Config{}))
		grandchild := Seed(s, child, s.Apply(child, lorebook.Config{}))
		assert.Equal(t, -100, s.Context(grandchild, lorebook.Config{}).BudgetPriority)
		assert.Equal(t, lorebook.DefaultEntry(), s.Entry(grandchild, lorebook.Config{}))
	})
}

type level struct {
	priority int
	search   int
}

// walkChain resolves a straight chain of nodes that all use s.
func walkChain(s Strategy, depth int, cfg lorebook.Config) []level {
	st := DefaultState()
	var out []level
	for i := 0; i < depth; i++ {
		applied := s.Apply(st, cfg)
		out = append(out, level{
			priority: s.Context(st, applied).BudgetPriority,
			search:   s.Entry(st, applied).SearchRange,
		})
		st = Seed(s, st, applied)
	}
	return out
}

func TestIncrementing_Chain(t *testing.T) {
	s := Character()
	levels := walkChain(s, 4, lorebook.Config{})

	require.Len(t, levels, 4)
	for i, lv := range levels {
		assert.Equal(t, CharacterPreset.BudgetPriority+i*DefaultPriorityDelta, lv.priority, "level %d", i)
		assert.Equal(t, CharacterPreset.SearchRange+i*DefaultSearchDelta, lv.search, "level %d", i)
	}
}

func TestIncrementing_StripsOverridesWhenReapplied(t *testing.T) {
	s := NewIncrementing(lorebook.Config{})
	cfg := lorebook.Config{
		Context: lorebook.ContextOverride{BudgetPriority: lorebook.Ptr(900), ReservedTokens: lorebook.Ptr(7)},
		Entry:   lorebook.EntryOverride{SearchRange: lorebook.Ptr(5000)},
	}

	levels := walkChain(s, 3, cfg)
	assert.Equal(t, []level{{900, 5000}, {901, 6024}, {902, 7048}}, levels)

	st := DefaultState()
	child := Seed(s, st, s.Apply(st, cfg))
	applied := s.Apply(child, cfg)
	assert.Nil(t, applied.Context.BudgetPriority)
	assert.Nil(t, applied.Entry.SearchRange)
	assert.Equal(t, 7, *applied.Context.ReservedTokens, "other fields still apply")
}

func TestIncrementing_IdentityNotValue(t *testing.T) {
	first := Character()
	second := Character()
	require.NotEqual(t, first.ID(), second.ID())

	st := DefaultState()
	child := Seed(first, st, first.Apply(st, lorebook.Config{}))

	// An equal but distinct instance starts over from its defaults.
	applied := second.Apply(child, lorebook.Config{})
	assert.Equal(t, CharacterPreset.BudgetPriority, second.Context(child, applied).BudgetPriority)

	// The original instance keeps counting.
	applied = first.Apply(child, lorebook.Config{})
	assert.Equal(t, CharacterPreset.BudgetPriority+1, first.Context(child, applied).BudgetPriority)
}

func TestIncrementing_CustomDeltas(t *testing.T) {
	s := Note(WithPriorityDelta(-10), WithSearchDelta(0))
	levels := walkChain(s, 3, lorebook.Config{})

	assert.Equal(t, []level{
		{NotePreset.BudgetPriority, NotePreset.SearchRange},
		{NotePreset.BudgetPriority - 10, NotePreset.SearchRange},
		{NotePreset.BudgetPriority - 20, NotePreset.SearchRange},
	}, levels)

	p, d := s.Deltas()
	assert.Equal(t, -10, p)
	assert.Equal(t, 0, d)
	assert.Equal(t, "note", s.Name())
}

func TestIncrementing_ExtendUsesResolvedState(t *testing.T) {
	s := NewIncrementing(lorebook.Config{})
	st := DefaultState()

	ext := s.Extend(st, lorebook.Config{})
	assert.Equal(t, lorebook.DefaultContext().BudgetPriority+1, *ext.Context.BudgetPriority)
	assert.Equal(t, lorebook.DefaultEntry().SearchRange+1024, *ext.Entry.SearchRange)
}

func TestPresets(t *testing.T) {
	assert.ElementsMatch(t, []string{"concept", "faction", "location", "item", "character", "note"}, Presets())

	p, ok := LookupPreset(" Character ")
	require.True(t, ok)
	assert.Equal(t, CharacterPreset, p)

	_, ok = LookupPreset("villain")
	assert.False(t, ok)

	cfg := NotePreset.Config()
	assert.Equal(t, -4, *cfg.Context.InsertionPosition)
	assert.Equal(t, 50, *cfg.Context.ReservedTokens)

	s := Faction(WithDefaults(lorebook.Config{Context: lorebook.ContextOverride{Prefix: lorebook.Ptr("[ ")}}))
	ctx := s.Context(DefaultState(), s.Apply(DefaultState(), lorebook.Config{}))
	assert.Equal(t, "[ ", ctx.Prefix)
	assert.Equal(t, FactionPreset.ReservedTokens, ctx.ReservedTokens)
}
