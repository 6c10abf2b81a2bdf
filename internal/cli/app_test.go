package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/testutils"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/validator"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const realm = `
name: realm
entries:
  - name: Alice
    keys: [alice]
    text: Alice is a knight.
    subEntries:
      - name: Sword
        keys: [sword]
        text: Her sword is Dawn.
`

func newTestApp(t *testing.T, cfg *Config) (*App, *bytes.Buffer) {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	var out bytes.Buffer
	app, err := NewApp(cfg, &out, io.Discard)
	require.NoError(t, err)
	return app, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewApp_BadSettings(t *testing.T) {
	_, err := NewApp(&Config{LogLevel: "loud"}, io.Discard, io.Discard)
	assert.Error(t, err)

	_, err = NewApp(&Config{LogLevel: "info", LogFormat: "xml"}, io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestApp_Build(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "lorehelper.prom")
	app, _ := newTestApp(t, &Config{OutputDir: filepath.Join(dir, "out"), MetricsFile: metricsFile})

	out, err := app.Build(context.Background(), writeFile(t, dir, "realm.yaml", realm))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "realm.lorebook"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lb, err := lorebook.Parse(data)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 2)
	assert.Equal(t, "Alice - Sword", lb.Entries[1].DisplayName)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `lorehelper_builds_total{outcome="success",project="realm"} 1`)
}

func TestApp_BuildRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	app, _ := newTestApp(t, &Config{})

	path := writeFile(t, dir, "bad.yaml", `
entries:
  - name: Broken
    keys: [x]
    text: x
    config:
      context:
        tokenBudget: 0
`)
	_, err := app.Build(context.Background(), path)
	require.Error(t, err)
	var agg *validator.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.NotEmpty(t, agg.Errors)

	names, err := app.Store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names, "nothing is written for an invalid lorebook")
}

func TestApp_Preview(t *testing.T) {
	dir := t.TempDir()
	app, out := newTestApp(t, &Config{})

	require.NoError(t, app.Preview(context.Background(), writeFile(t, dir, "realm.yaml", realm)))
	assert.Contains(t, out.String(), "Alice - Sword")
	assert.Contains(t, out.String(), "| # |", "markdown is left raw when not a terminal")
}

func TestApp_Graph(t *testing.T) {
	dir := t.TempDir()
	app, out := newTestApp(t, &Config{})

	require.NoError(t, app.Graph(context.Background(), writeFile(t, dir, "realm.yaml", realm)))
	assert.True(t, strings.HasPrefix(out.String(), "graph TD"))
	assert.Contains(t, out.String(), "Sword")
}

func TestApp_Validate(t *testing.T) {
	dir := t.TempDir()
	app, out := newTestApp(t, &Config{})

	require.NoError(t, app.Validate(context.Background(), writeFile(t, dir, "realm.yaml", realm)))
	assert.Contains(t, out.String(), "no issues")
}

func TestApp_TextsDir(t *testing.T) {
	dir := t.TempDir()
	texts := filepath.Join(dir, "texts")
	testutils.WriteFiles(t, texts, map[string]string{
		"alice.md": "---\ntexts: []\n---\nAlice is a knight.",
	})
	app, _ := newTestApp(t, &Config{TextsDir: texts})

	path := writeFile(t, dir, "realm.yaml", `
entries:
  - name: Alice
    keys: [alice]
    textFrom: alice
`)
	out, err := app.Build(context.Background(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice is a knight.")
}

func TestApp_Watch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	app, _ := newTestApp(t, &Config{OutputDir: outDir})
	path := writeFile(t, dir, "realm.yaml", realm)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Watch(ctx, path) }()

	target := filepath.Join(outDir, "realm.lorebook")
	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	writeFile(t, dir, "realm.yaml", strings.Replace(realm, "Her sword is Dawn.", "It glows.", 1))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(data), "It glows.")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_WatchTexts(t *testing.T) {
	dir := t.TempDir()
	texts := filepath.Join(dir, "texts")
	testutils.WriteFiles(t, texts, map[string]string{
		"alice.md": "---\ntexts: []\n---\nAlice is a knight.",
	})
	outDir := filepath.Join(dir, "out")
	app, _ := newTestApp(t, &Config{OutputDir: outDir, TextsDir: texts})
	path := writeFile(t, dir, "realm.yaml", `
entries:
  - name: Alice
    keys: [alice]
    textFrom: alice
`)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Watch(ctx, path) }()

	target := filepath.Join(outDir, "realm.lorebook")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(data), "Alice is a knight.")
	}, 5*time.Second, 50*time.Millisecond)

	// Rewritten on every poll so an edit made before the watcher is ready
	// is not the only one.
	require.Eventually(t, func() bool {
		testutils.WriteFiles(t, texts, map[string]string{
			"alice.md": "---\ntexts: []\n---\nAlice is a queen.",
		})
		data, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(data), "Alice is a queen.")
	}, 10*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_BuildExample(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("..", "..", "examples", "kingdom"))))
	app, _ := newTestApp(t, &Config{TextsDir: filepath.Join(dir, "texts")})

	out, err := app.Build(context.Background(), filepath.Join(dir, "kingdom.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lb, err := lorebook.Parse(data)
	require.NoError(t, err)

	var names []string
	for _, r := range lb.Entries {
		names = append(names, r.DisplayName)
	}
	assert.Equal(t, []string{
		"Style",
		"Eldermoor",
		"Eldermoor - Capital",
		"Eldermoor - War",
		"Alice (1 of 2)",
		"Alice (2 of 2)",
		"Alice - Sword",
		"Alice - Rival",
	}, names)
	assert.True(t, lb.Entries[0].ForceActivation, "keyless entries are always active")
	assert.Equal(t, "Alice Vale is a knight of Eldermoor, sworn to the Greywater court.", lb.Entries[4].Text)
}
