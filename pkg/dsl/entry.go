package dsl

import (
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
)

// EntryBuilder provides a fluent API for configuring an entry.
type EntryBuilder struct {
	entry builder.Entry
	subs  []*EntryBuilder
}

// Entry starts a new detached entry, typically passed to Sub.
func Entry(name string) *EntryBuilder {
	return &EntryBuilder{entry: builder.Entry{Name: name}}
}

// Keys appends phrases to the entry's own keys.
func (e *EntryBuilder) Keys(keys ...phrase.Phrase) *EntryBuilder {
	e.entry.Keys = append(e.entry.Keys, keys...)
	return e
}

// Words appends plain keywords, each matched as a word prefix.
func (e *EntryBuilder) Words(words ...string) *EntryBuilder {
	return e.Keys(phrase.Words(words...)...)
}

// Text appends text blocks. Each block becomes one record.
func (e *EntryBuilder) Text(blocks ...string) *EntryBuilder {
	e.entry.Text = append(e.entry.Text, blocks...)
	return e
}

// Strategy sets the strategy for this entry and its descendants.
func (e *EntryBuilder) Strategy(s strategy.Strategy) *EntryBuilder {
	e.entry.Strategy = s
	return e
}

// Config merges overrides into the entry's configuration. Later calls win.
func (e *EntryBuilder) Config(cfg lorebook.Config) *EntryBuilder {
	e.entry.Config = e.entry.Config.Merge(cfg)
	return e
}

// Priority sets the budget priority.
func (e *EntryBuilder) Priority(n int) *EntryBuilder {
	return e.Config(lorebook.Config{Context: lorebook.ContextOverride{BudgetPriority: lorebook.Ptr(n)}})
}

// ReservedTokens sets the reserved token count.
func (e *EntryBuilder) ReservedTokens(n int) *EntryBuilder {
	return e.Config(lorebook.Config{Context: lorebook.ContextOverride{ReservedTokens: lorebook.Ptr(n)}})
}

// TokenBudget sets the token budget.
func (e *EntryBuilder) TokenBudget(n int) *EntryBuilder {
	return e.Config(lorebook.Config{Context: lorebook.ContextOverride{TokenBudget: lorebook.Ptr(n)}})
}

// InsertionPosition sets where the text is inserted into the context.
func (e *EntryBuilder) InsertionPosition(n int) *EntryBuilder {
	return e.Config(lorebook.Config{Context: lorebook.ContextOverride{InsertionPosition: lorebook.Ptr(n)}})
}

// Prefix sets the text placed before each record's text.
func (e *EntryBuilder) Prefix(s string) *EntryBuilder {
	return e.Config(lorebook.Config{Context: lorebook.ContextOverride{Prefix: lorebook.Ptr(s)}})
}

// Suffix sets the text placed after each record's text.
func (e *EntryBuilder) Suffix(s string) *EntryBuilder {
	return e.Config(lorebook.Config{Context: lorebook.ContextOverride{Suffix: lorebook.Ptr(s)}})
}

// SearchRange sets how many characters of story are scanned for keys.
func (e *EntryBuilder) SearchRange(n int) *EntryBuilder {
	return e.Config(lorebook.Config{Entry: lorebook.EntryOverride{SearchRange: lorebook.Ptr(n)}})
}

// Enabled toggles the entry.
func (e *EntryBuilder) Enabled(v bool) *EntryBuilder {
	return e.Config(lorebook.Config{Entry: lorebook.EntryOverride{Enabled: lorebook.Ptr(v)}})
}

// Always marks the entry as always active.
func (e *EntryBuilder) Always() *EntryBuilder {
	return e.Config(lorebook.Config{Entry: lorebook.EntryOverride{ForceActivation: lorebook.Ptr(true)}})
}

// KeyRelative anchors insertion to the last key match.
func (e *EntryBuilder) KeyRelative(v bool) *EntryBuilder {
	return e.Config(lorebook.Config{Entry: lorebook.EntryOverride{KeyRelative: lorebook.Ptr(v)}})
}

// NonStoryActivatable lets other lorebook text activate the entry.
func (e *EntryBuilder) NonStoryActivatable(v bool) *EntryBuilder {
	return e.Config(lorebook.Config{Entry: lorebook.EntryOverride{NonStoryActivatable: lorebook.Ptr(v)}})
}

// BaseOp sets how this entry's keys combine with the inherited keys.
func (e *EntryBuilder) BaseOp(op phrase.Op) *EntryBuilder {
	e.entry.BaseOp = op
	return e
}

// SubOp sets the operator children inherit as their BaseOp.
func (e *EntryBuilder) SubOp(op phrase.Op) *EntryBuilder {
	e.entry.SubOp = op
	return e
}

// BaseKeys replaces the keys inherited from the parent.
func (e *EntryBuilder) BaseKeys(bk builder.BaseKeys) *EntryBuilder {
	e.entry.BaseKeys = bk
	return e
}

// Exclude drops matching inherited keys.
func (e *EntryBuilder) Exclude(keys ...phrase.Phrase) *EntryBuilder {
	return e.BaseKeys(builder.ExcludeKeys(keys...))
}

// Sub appends child entries.
func (e *EntryBuilder) Sub(children ...*EntryBuilder) *EntryBuilder {
	e.subs = append(e.subs, children...)
	return e
}

// Build returns the underlying builder.Entry with its children resolved.
// This is primarily used by the Book, but exposed for advanced usage.
func (e *EntryBuilder) Build() builder.Entry {
	out := e.entry
	out.Keys = append([]phrase.Phrase(nil), e.entry.Keys...)
	out.Text = append([]string(nil), e.entry.Text...)
	out.SubEntries = make([]builder.Entry, 0, len(e.subs))
	for _, s := range e.subs {
		out.SubEntries = append(out.SubEntries, s.Build())
	}
	return out
}
