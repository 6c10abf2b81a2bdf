package tui

import (
	"fmt"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
)

const previewLen = 48

// Summary renders a lorebook as a markdown overview, one table row per record.
func Summary(title string, lb *lorebook.Lorebook) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", escapeCell(title))
	fmt.Fprintf(&sb, "%d entries, lorebook version %d", len(lb.Entries), lb.LorebookVersion)
	if lb.Settings.OrderByKeyLocations {
		sb.WriteString(", ordered by key locations")
	}
	sb.WriteString(".\n\n")

	if len(lb.Entries) == 0 {
		return sb.String()
	}

	sb.WriteString("| # | Entry | Keys | Priority | Search | Reserved | Active | Text |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")
	for i, r := range lb.Entries {
		fmt.Fprintf(&sb, "| %d | %s | %d | %d | %d | %d | %s | %s |\n",
			i+1,
			escapeCell(r.DisplayName),
			len(r.Keys),
			r.ContextConfig.BudgetPriority,
			r.SearchRange,
			r.ContextConfig.ReservedTokens,
			activation(r),
			escapeCell(preview(r.Text)),
		)
	}
	return sb.String()
}

func activation(r lorebook.Record) string {
	switch {
	case !r.Enabled:
		return "off"
	case r.ForceActivation:
		return "always"
	default:
		return "keys"
	}
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen-1]) + "…"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
