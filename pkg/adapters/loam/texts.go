package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"github.com/aretw0/loam"
)

// Texts adapts a Loam repository to the ports.TextSource interface.
// A reference is a document ID without its extension, e.g. "characters/alice".
type Texts struct {
	Repo *loam.TypedRepository[TextMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[TextMetadata]) *Texts {
	return &Texts{Repo: repo}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Texts, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numeric frontmatter consistent across formats.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[TextMetadata](repo)), nil
}

// Text returns the blocks of the document ref.
func (t *Texts) Text(ctx context.Context, ref string) ([]string, error) {
	doc, err := t.Repo.Get(ctx, ref)
	if err != nil {
		if known, listErr := t.has(ctx, ref); listErr == nil && !known {
			return nil, fmt.Errorf("text %q: %w", ref, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", ref, err)
	}
	return blocks(doc.Data, doc.Content), nil
}

func blocks(meta TextMetadata, body string) []string {
	if len(meta.Texts) > 0 {
		out := make([]string, len(meta.Texts))
		copy(out, meta.Texts)
		return out
	}

	parts := []string{body}
	if meta.Split != "" {
		parts = splitLines(body, meta.Split)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitLines cuts body at every line whose trimmed content is sep.
func splitLines(body, sep string) []string {
	var out []string
	var cur []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == sep {
			out = append(out, strings.Join(cur, "\n"))
			cur = cur[:0]
			continue
		}
		cur = append(cur, line)
	}
	return append(out, strings.Join(cur, "\n"))
}

func (t *Texts) has(ctx context.Context, ref string) (bool, error) {
	refs, err := t.Refs(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range refs {
		if r == trimExtension(ref) {
			return true, nil
		}
	}
	return false, nil
}

// Refs lists every reference in the repository.
func (t *Texts) Refs(ctx context.Context) ([]string, error) {
	docs, err := t.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	refs := make([]string, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, trimExtension(doc.ID))
	}
	return refs, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (t *Texts) Watch(ctx context.Context) (<-chan string, error) {
	events, err := t.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
