package lorebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextOverride_Merge(t *testing.T) {
	base := ContextOverride{BudgetPriority: Ptr(100), Prefix: Ptr("----\n")}
	next := ContextOverride{BudgetPriority: Ptr(200), ReservedTokens: Ptr(50)}

	got := base.Merge(next)
	assert.Equal(t, 200, *got.BudgetPriority)
	assert.Equal(t, "----\n", *got.Prefix)
	assert.Equal(t, 50, *got.ReservedTokens)
	assert.Nil(t, got.Suffix)

	// Inputs are untouched.
	assert.Equal(t, 100, *base.BudgetPriority)
	assert.Nil(t, base.ReservedTokens)
}

func TestContextConfig_With(t *testing.T) {
	def := DefaultContext()
	got := def.With(ContextOverride{
		TokenBudget:   Ptr(512),
		TrimDirection: Ptr(TrimTop),
	})

	assert.Equal(t, 512, got.TokenBudget)
	assert.Equal(t, TrimTop, got.TrimDirection)
	assert.Equal(t, def.Suffix, got.Suffix)
	assert.Equal(t, 2048, def.TokenBudget, "receiver is a copy")
}

func TestEntryConfig_With(t *testing.T) {
	got := DefaultEntry().With(EntryOverride{Enabled: Ptr(false), SearchRange: Ptr(4000)})
	assert.Equal(t, EntryConfig{SearchRange: 4000}, got)
}

func TestConfig_MergeAndIsZero(t *testing.T) {
	assert.True(t, Config{}.IsZero())

	a := Config{Entry: EntryOverride{KeyRelative: Ptr(true)}}
	b := Config{Context: ContextOverride{Suffix: Ptr("")}}
	got := a.Merge(b)

	assert.False(t, got.IsZero())
	assert.True(t, *got.Entry.KeyRelative)
	assert.Equal(t, "", *got.Context.Suffix)
}
