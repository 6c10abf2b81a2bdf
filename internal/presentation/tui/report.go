package tui

import (
	"fmt"
	"io"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/validator"
	"github.com/muesli/termenv"
)

// PrintReport writes a colored lint report to w.
func PrintReport(w io.Writer, report *validator.Report) {
	p := termenv.ColorProfile()

	if len(report.Issues) == 0 {
		fmt.Fprintln(w, termenv.String("✓ no issues").Foreground(p.Color("#22c55e")))
		return
	}

	errs, warns := 0, 0
	for _, is := range report.Issues {
		tag := termenv.String("warning").Foreground(p.Color("#eab308"))
		if is.Severity == validator.SeverityError {
			tag = termenv.String("error  ").Foreground(p.Color("#ef4444")).Bold()
			errs++
		} else {
			warns++
		}
		fmt.Fprintf(w, "%s %s\n", tag, is.Error())
	}
	fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errs, warns)
}
