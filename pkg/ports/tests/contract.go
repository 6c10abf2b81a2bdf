package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// TextSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.TextSource.
func TextSourceContractTest(t *testing.T, source ports.TextSource, setupData map[string][]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Text_Success", func(t *testing.T) {
		for ref, expected := range setupData {
			blocks, err := source.Text(ctx, ref)
			if err != nil {
				t.Fatalf("unexpected error getting text %s: %v", ref, err)
			}
			if len(blocks) != len(expected) {
				t.Fatalf("block count mismatch for %s. got %d, want %d", ref, len(blocks), len(expected))
			}
			for i := range expected {
				if blocks[i] != expected[i] {
					t.Errorf("block %d mismatch for %s. got %q, want %q", i, ref, blocks[i], expected[i])
				}
			}
		}
	})

	t.Run("Text_NotFound", func(t *testing.T) {
		_, err := source.Text(ctx, "non-existent-text")
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-existent text, got %v", err)
		}
	})

	t.Run("Text_ReturnsCopy", func(t *testing.T) {
		for ref := range setupData {
			blocks, err := source.Text(ctx, ref)
			if err != nil || len(blocks) == 0 {
				continue
			}
			blocks[0] = "mutated"
			again, err := source.Text(ctx, ref)
			if err != nil {
				t.Fatalf("unexpected error getting text %s: %v", ref, err)
			}
			if again[0] == "mutated" {
				t.Errorf("mutating the result changed the source for %s", ref)
			}
			return
		}
	})
}
