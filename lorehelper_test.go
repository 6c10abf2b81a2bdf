package lorehelper_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lorehelper "github.com/TaleirOfDeynai/NAI-Lore-Helper"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/adapters/file"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/metrics"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/adapters/memory"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_CompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "realm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entries:
  - name: Alice
    keys: [alice]
    textFrom: alice
    subEntries:
      - name: Sword
        keys: [sword]
        text: Her sword is Dawn.
`), 0644))

	texts := memory.NewTexts(map[string][]string{"alice": {"Alice is a knight."}})
	helper := lorehelper.New(lorehelper.WithTextSource(texts))

	ctx := context.Background()
	project, lb, err := helper.CompileFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "realm", project.Name)
	require.Len(t, lb.Entries, 2)
	assert.Equal(t, "Alice is a knight.", lb.Entries[0].Text)
	assert.Equal(t, "Alice - Sword", lb.Entries[1].DisplayName)

	// Round trip through the file store
	store := file.NewStore(filepath.Join(dir, "out"))
	require.NoError(t, helper.Export(ctx, lb, project.Name, store))

	data, err := store.Read(ctx, "realm")
	require.NoError(t, err)
	parsed, err := lorebook.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, lb, parsed)
}

func TestFacade_CompileFileMissing(t *testing.T) {
	_, _, err := lorehelper.New().CompileFile(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFacade_CompileNil(t *testing.T) {
	_, err := lorehelper.New().Compile(context.Background(), nil)
	assert.ErrorIs(t, err, lorehelper.ErrNoProject)
}

func TestFacade_CompileCanceled(t *testing.T) {
	c := metrics.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lorehelper.New(lorehelper.WithMetrics(c)).Compile(ctx, &ports.Project{Name: "world"})
	assert.ErrorIs(t, err, context.Canceled)

	expected := `
# HELP lorehelper_builds_total Total number of builds by outcome
# TYPE lorehelper_builds_total counter
lorehelper_builds_total{outcome="error",project="world"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(c.Registry, strings.NewReader(expected), "lorehelper_builds_total"))
}

func TestFacade_Hooks(t *testing.T) {
	c := metrics.New()
	var visited []string
	helper := lorehelper.New(
		lorehelper.WithMetrics(c),
		lorehelper.WithHooks(builder.Hooks{
			OnEntry: func(e *builder.EntryEvent) { visited = append(visited, e.Name) },
		}),
	)

	project := &ports.Project{
		Name: "world",
		Entries: []builder.Entry{{
			Name:       "Alice",
			Keys:       []phrase.Phrase{phrase.Word("alice")},
			Text:       []string{"A knight."},
			SubEntries: []builder.Entry{{Name: "Sword", Text: []string{"Dawn."}}},
		}},
	}
	_, err := helper.Compile(context.Background(), project)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice", "Alice - Sword"}, visited)
	expected := `
# HELP lorehelper_builds_total Total number of builds by outcome
# TYPE lorehelper_builds_total counter
lorehelper_builds_total{outcome="success",project="world"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(c.Registry, strings.NewReader(expected), "lorehelper_builds_total"))
}

func TestFacade_ExportError(t *testing.T) {
	lb := lorebook.New(lorebook.Settings{}, nil)
	err := lorehelper.New().Export(context.Background(), lb, "", memory.NewStore())
	assert.ErrorContains(t, err, "export")
}
