// Package cli implements the lorehelper commands on top of the library.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	lorehelper "github.com/TaleirOfDeynai/NAI-Lore-Helper"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/adapters/file"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/logging"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/metrics"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/validator"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/adapters/loam"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// App carries what every command needs.
type App struct {
	Config  *Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Helper  *lorehelper.Helper
	Store   ports.LorebookStore
	Out     io.Writer
}

// NewApp wires the logger, metrics, text source and output store from cfg.
// Logs go to errOut; command output goes to out.
func NewApp(cfg *Config, out, errOut io.Writer) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewWithFormat(errOut, level, logging.Format(cfg.LogFormat))
	if err != nil {
		return nil, err
	}

	collector := metrics.New()
	opts := []lorehelper.Option{
		lorehelper.WithLogger(logger),
		lorehelper.WithMetrics(collector),
	}
	if cfg.TextsDir != "" {
		texts, err := loam.Open(cfg.TextsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open texts dir: %w", err)
		}
		opts = append(opts, lorehelper.WithTextSource(texts))
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Helper:  lorehelper.New(opts...),
		Store:   file.NewStore(cfg.OutputDir),
		Out:     out,
	}, nil
}

// compile loads and compiles the project, then lints the result. Warnings
// are logged; errors are left to the caller.
func (a *App) compile(ctx context.Context, path string) (*ports.Project, *lorebook.Lorebook, *validator.Report, error) {
	p, lb, err := a.Helper.CompileFile(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	report := validator.Validate(lb)
	for _, w := range report.Warnings() {
		a.Logger.Warn("Lint warning", "entry", w.Entry, "field", w.Field, "reason", w.Reason)
	}
	return p, lb, report, nil
}

func (a *App) writeMetrics() {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteFile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("Metrics export failed", "err", err)
	}
}
