package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/adapters/file"
)

// Build compiles the project at path and writes <output_dir>/<name>.lorebook.
// It returns the written file.
func (a *App) Build(ctx context.Context, path string) (string, error) {
	defer a.writeMetrics()

	p, lb, report, err := a.compile(ctx, path)
	if err != nil {
		return "", err
	}
	if err := report.Err(); err != nil {
		return "", fmt.Errorf("lorebook %s is invalid: %w", p.Name, err)
	}
	if err := a.Helper.Export(ctx, lb, p.Name, a.Store); err != nil {
		return "", err
	}

	out := p.Name + file.Ext
	if fs, ok := a.Store.(*file.Store); ok {
		out = fs.Path(p.Name)
	}
	a.Logger.Info("Lorebook written", "path", out, "records", len(lb.Entries))
	return out, nil
}

// Watch builds once, then rebuilds every time the project file changes until
// ctx is cancelled. Failed rebuilds are reported and the watch goes on.
func (a *App) Watch(ctx context.Context, path string) error {
	events, err := a.Helper.Loader(path).Watch(ctx)
	if err != nil {
		return err
	}

	a.rebuild(ctx, path)
	printSystemMessage(a.Out, "Watching '%s' for changes...", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			a.Logger.Info("Change detected, rebuilding", "event", event)
			// Let editors finish writing before reading the file back.
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(100 * time.Millisecond):
			}
			a.rebuild(ctx, path)
		}
	}
}

func (a *App) rebuild(ctx context.Context, path string) {
	out, err := a.Build(ctx, path)
	if err != nil {
		a.Logger.Error("Build failed", "err", err)
		printSystemMessage(a.Out, "Build failed: %v", err)
		return
	}
	printSystemMessage(a.Out, "Wrote '%s'.", out)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
