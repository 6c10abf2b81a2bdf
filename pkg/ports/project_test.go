package ports

import (
	"testing"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_BuilderOptions(t *testing.T) {
	p := &Project{
		Strategy: strategy.Character(),
		BaseOp:   phrase.With,
		Reversed: true,
		Entries: []builder.Entry{{
			Name:       "A",
			Keys:       phrase.Words("a"),
			Text:       []string{"1", "2"},
			SubEntries: []builder.Entry{{Name: "B", Keys: phrase.Words("b"), Text: []string{"b"}}},
		}},
	}

	records := builder.New(p.BuilderOptions()...).Build(p.Entries...)
	require.Len(t, records, 3)
	assert.Equal(t, "A - B", records[0].DisplayName)
	assert.Equal(t, phrase.With(phrase.Word("b"), phrase.Word("a")).Output(), records[0].Keys[0])
	assert.Equal(t, strategy.CharacterPreset.BudgetPriority+1, records[0].ContextConfig.BudgetPriority)
	assert.Equal(t, "A (2 of 2)", records[1].DisplayName)
}
