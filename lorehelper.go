package lorehelper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/adapters/file"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/compiler"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/metrics"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// ErrNoProject is returned when Compile is given a nil project.
var ErrNoProject = errors.New("no project")

// Helper compiles entry trees into lorebooks.
type Helper struct {
	logger  *slog.Logger
	hooks   builder.Hooks
	texts   ports.TextSource
	metrics *metrics.Collector
}

// Option defines a functional option for configuring the Helper.
type Option func(*Helper)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) { h.logger = logger }
}

// WithHooks registers build observation hooks.
func WithHooks(hooks builder.Hooks) Option {
	return func(h *Helper) { h.hooks = hooks }
}

// WithTextSource resolves textFrom references in project files.
func WithTextSource(ts ports.TextSource) Option {
	return func(h *Helper) { h.texts = ts }
}

// WithMetrics feeds every build into the collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(h *Helper) { h.metrics = c }
}

// New creates a Helper.
func New(opts ...Option) *Helper {
	h := &Helper{}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	return h
}

// Loader returns a loader for the project file at path, wired to the
// Helper's text source. A watchable text source is watched along with the
// project file.
func (h *Helper) Loader(path string) *file.Loader {
	var opts []compiler.Option
	if h.texts != nil {
		opts = append(opts, compiler.WithTextSource(h.texts))
	}
	l := file.NewLoader(path, h.logger, opts...)
	if w, ok := h.texts.(ports.Watchable); ok {
		l.Also(w)
	}
	return l
}

// Compile builds the project's entry tree into a lorebook.
func (h *Helper) Compile(ctx context.Context, p *ports.Project) (lb *lorebook.Lorebook, err error) {
	if p == nil {
		return nil, ErrNoProject
	}
	if h.metrics != nil {
		defer func() { h.metrics.ObserveBuild(p.Name, err) }()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %w", p.Name, err)
	}

	hooks := h.hooks
	if h.metrics != nil {
		hooks = builder.Chain(h.metrics.Hooks(), h.hooks)
	}
	opts := append(p.BuilderOptions(),
		builder.WithHooks(hooks),
		builder.WithLogger(h.logger),
	)
	lb = builder.New(opts...).Lorebook(p.Settings, p.Entries...)
	h.logger.Info("Compiled lorebook", "project", p.Name, "records", len(lb.Entries))
	return lb, nil
}

// CompileFile loads the YAML project at path and compiles it.
func (h *Helper) CompileFile(ctx context.Context, path string) (*ports.Project, *lorebook.Lorebook, error) {
	p, err := h.Loader(path).Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	lb, err := h.Compile(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return p, lb, nil
}

// Export serializes the lorebook and hands it to the writer under name.
func (h *Helper) Export(ctx context.Context, lb *lorebook.Lorebook, name string, w ports.LorebookWriter) error {
	data, err := lb.Marshal()
	if err != nil {
		return err
	}
	if err := w.Write(ctx, name, data); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	h.logger.Debug("Exported lorebook", "name", name, "bytes", len(data))
	return nil
}
