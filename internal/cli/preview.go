package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/presentation/graph"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/presentation/tui"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/validator"
	"golang.org/x/term"
)

// Preview prints a summary table of the compiled lorebook. The markdown is
// styled with glamour when the output is a terminal.
func (a *App) Preview(ctx context.Context, path string) error {
	p, lb, _, err := a.compile(ctx, path)
	if err != nil {
		return err
	}

	markdown := tui.Summary(p.Name, lb)
	if isTerminal(a.Out) {
		rendered, err := tui.NewRenderer()(markdown)
		if err == nil {
			markdown = rendered
		}
	}
	_, err = fmt.Fprint(a.Out, markdown)
	return err
}

// Graph prints a Mermaid flowchart of the entry tree. Entries whose records
// fail validation are highlighted.
func (a *App) Graph(ctx context.Context, path string) error {
	p, _, report, err := a.compile(ctx, path)
	if err != nil {
		return err
	}

	overlay := &graph.Overlay{}
	for _, issue := range report.Issues {
		if issue.Severity == validator.SeverityError {
			overlay.Flagged = append(overlay.Flagged, issue.Entry)
		}
	}
	_, err = fmt.Fprint(a.Out, graph.GenerateMermaid(p.Entries, overlay))
	return err
}

// Validate prints the lint report and returns its errors, if any.
func (a *App) Validate(ctx context.Context, path string) error {
	defer a.writeMetrics()

	_, _, report, err := a.compile(ctx, path)
	if err != nil {
		return err
	}
	tui.PrintReport(a.Out, report)
	return report.Err()
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
