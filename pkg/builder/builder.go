package builder

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
)

// Builder walks entry trees. A Builder holds no per-build state and can be
// reused.
type Builder struct {
	strategy  strategy.Strategy
	overrides lorebook.Config
	baseOp    phrase.Op
	reversed  bool
	hooks     Hooks
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrategy sets the root strategy. The default is a Fixed strategy with
// no overrides.
func WithStrategy(s strategy.Strategy) Option {
	return func(b *Builder) { b.strategy = s }
}

// WithOverrides layers cfg over the lorebook defaults at the root.
func WithOverrides(cfg lorebook.Config) Option {
	return func(b *Builder) { b.overrides = b.overrides.Merge(cfg) }
}

// WithBaseOp sets the operator root entries inherit. The default is phrase.And.
func WithBaseOp(op phrase.Op) Option {
	return func(b *Builder) { b.baseOp = op }
}

// WithReversed emits records in reverse order: children before their
// parent's text, later siblings and text blocks first.
func WithReversed(v bool) Option {
	return func(b *Builder) { b.reversed = v }
}

// WithHooks registers observation callbacks.
func WithHooks(h Hooks) Option {
	return func(b *Builder) { b.hooks = h }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{baseOp: phrase.And}
	for _, opt := range opts {
		opt(b)
	}
	if b.strategy == nil {
		b.strategy = strategy.NewFixed(lorebook.Config{})
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// frame is what a node inherits from its parent.
type frame struct {
	state    strategy.State
	keys     []phrase.Escaped
	baseOp   phrase.Op
	strategy strategy.Strategy
	prefix   string
}

func (b *Builder) root() frame {
	return frame{
		state: strategy.NewState(
			lorebook.DefaultContext().With(b.overrides.Context),
			lorebook.DefaultEntry().With(b.overrides.Entry),
		),
		baseOp:   b.baseOp,
		strategy: b.strategy,
	}
}

// Build flattens the entries into records in document order.
func (b *Builder) Build(entries ...Entry) []lorebook.Record {
	return b.walkAll(entries, b.root())
}

// Lorebook builds the entries and wraps them with the given settings.
func (b *Builder) Lorebook(settings lorebook.Settings, entries ...Entry) *lorebook.Lorebook {
	return lorebook.New(settings, b.Build(entries...))
}

func (b *Builder) walkAll(entries []Entry, f frame) []lorebook.Record {
	out := make([]lorebook.Record, 0, len(entries))
	for _, e := range order(entries, b.reversed) {
		out = append(out, b.walk(e, f)...)
	}
	return out
}

func (b *Builder) walk(e Entry, f frame) []lorebook.Record {
	name := f.prefix + e.Name

	baseOp := f.baseOp
	if e.BaseOp != nil {
		baseOp = e.BaseOp
	}
	keys := CombineKeys(e.BaseKeys.resolve(f.keys), phrase.ComposeAll(e.Keys...), baseOp)

	s := f.strategy
	if e.Strategy != nil {
		s = e.Strategy
	}
	applied := s.Apply(f.state, e.Config)
	ctx := s.Context(f.state, applied)
	entry := s.Entry(f.state, applied)
	if len(keys) == 0 {
		entry.ForceActivation = true
	}

	b.logger.Debug("entry",
		"name", name,
		"depth", f.state.Depth,
		"keys", len(keys),
		"texts", len(e.Text),
		"children", len(e.SubEntries),
	)
	if b.hooks.OnEntry != nil {
		b.hooks.OnEntry(&EntryEvent{
			Name:     name,
			Depth:    f.state.Depth,
			Keys:     len(keys),
			Texts:    len(e.Text),
			Children: len(e.SubEntries),
			Strategy: s.ID(),
		})
	}

	own := b.records(name, e.Text, outputKeys(keys), ctx, entry, f.state.Depth)
	if len(e.SubEntries) == 0 {
		return own
	}

	subOp := f.baseOp
	if e.SubOp != nil {
		subOp = e.SubOp
	}
	children := b.walkAll(e.SubEntries, frame{
		state:    strategy.Seed(s, f.state, applied),
		keys:     keys,
		baseOp:   subOp,
		strategy: s,
		prefix:   name + " - ",
	})

	if b.reversed {
		return append(children, own...)
	}
	return append(own, children...)
}

func (b *Builder) records(name string, texts, keys []string, ctx lorebook.ContextConfig, entry lorebook.EntryConfig, depth int) []lorebook.Record {
	out := make([]lorebook.Record, len(texts))
	for i, text := range texts {
		display := name
		if len(texts) > 1 {
			display = fmt.Sprintf("%s (%d of %d)", name, i+1, len(texts))
		}
		out[i] = lorebook.NewRecord(display, text, keys, ctx, entry)
	}
	if b.reversed {
		slices.Reverse(out)
	}
	if b.hooks.OnRecord != nil {
		for _, r := range out {
			b.hooks.OnRecord(&RecordEvent{Record: r, Depth: depth})
		}
	}
	return out
}

// EntryName returns the entry name behind a record display name, dropping
// the " (i of n)" suffix given to records of multi-text entries.
func EntryName(display string) string {
	at := strings.LastIndex(display, " (")
	if at < 0 || !strings.HasSuffix(display, ")") {
		return display
	}
	var i, n int
	var rest string
	if c, _ := fmt.Sscanf(display[at:], " (%d of %d%s", &i, &n, &rest); c != 3 || rest != ")" {
		return display
	}
	if i < 1 || i > n {
		return display
	}
	return display[:at]
}

func outputKeys(keys []phrase.Escaped) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Output()
	}
	return out
}

func order(entries []Entry, reversed bool) []Entry {
	if !reversed {
		return entries
	}
	out := slices.Clone(entries)
	slices.Reverse(out)
	return out
}
