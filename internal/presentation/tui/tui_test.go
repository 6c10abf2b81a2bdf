package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/validator"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	lb := builder.New().Lorebook(lorebook.Settings{OrderByKeyLocations: true},
		builder.Entry{Name: "A | B", Keys: phrase.Words("a"), Text: []string{strings.Repeat("word ", 20)}},
		builder.Entry{Name: "Style", Text: []string{"Past\ntense."}},
	)

	md := Summary("kingdom", lb)
	assert.Contains(t, md, "# kingdom")
	assert.Contains(t, md, "2 entries, lorebook version 3, ordered by key locations.")
	assert.Contains(t, md, `| 1 | A \| B | 1 | 400 | 1000 | 0 | keys |`)
	assert.Contains(t, md, "| 2 | Style | 0 | 400 | 1000 | 0 | always | Past tense. |")
	assert.Contains(t, md, "…")
}

func TestSummary_Empty(t *testing.T) {
	md := Summary("empty", lorebook.New(lorebook.Settings{}, nil))
	assert.Contains(t, md, "0 entries")
	assert.NotContains(t, md, "| # |")
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer()("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, &validator.Report{})
	assert.Contains(t, buf.String(), "no issues")

	buf.Reset()
	PrintReport(&buf, &validator.Report{Issues: []*validator.Issue{
		{Entry: "A", Field: "keys[0]", Reason: "bad", Severity: validator.SeverityError},
		{Entry: "B", Index: 1, Field: "displayName", Reason: "dup", Severity: validator.SeverityWarning},
	}})
	assert.Contains(t, buf.String(), `entry 0 "A": keys[0]: bad`)
	assert.Contains(t, buf.String(), "1 error(s), 1 warning(s)")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
