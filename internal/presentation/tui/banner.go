package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the application banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{`  _                     _   _      _                 `, "#34d399"},
		{` | |    ___  _ __ ___  | | | | ___| |_ __   ___ _ __ `, "#2dd4bf"},
		{` | |   / _ \| '__/ _ \ | |_| |/ _ \ | '_ \ / _ \ '__|`, "#22d3ee"},
		{` | |__| (_) | | |  __/ |  _  |  __/ | |_) |  __/ |   `, "#38bdf8"},
		{` |_____\___/|_|  \___| |_| |_|\___|_| .__/ \___|_|   `, "#60a5fa"},
		{`                                    |_|              `, "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
