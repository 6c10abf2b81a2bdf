/*
Package builder flattens an author's entry tree into lorebook records.

Each Entry may add keys, override settings and pick a strategy. Walking the
tree, the builder combines every node's keys with its parent's through the
node's base operator, asks the active strategy for the node's settings and for
the state handed to its children, and emits one record per text block.

	b := builder.New(builder.WithStrategy(strategy.Concept()))
	records := b.Build(builder.Entry{
		Name: "Magic",
		Keys: phrase.Words("magic", "spell"),
		Text: []string{"Magic is rare."},
		SubEntries: []builder.Entry{{
			Name: "Fire",
			Keys: phrase.Words("fire"),
			Text: []string{"Fire magic burns."},
		}},
	})

The second record is named "Magic - Fire" and carries a single key that
matches "fire" when "magic" or "spell" occur in the same text.
*/
package builder
