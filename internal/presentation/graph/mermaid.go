package graph

import (
	"fmt"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
)

// Overlay marks entries to highlight on the graph, by full display name
// ("Parent - Child"). Record names such as "Parent (1 of 2)" flag their entry.
type Overlay struct {
	Flagged []string
}

type named interface {
	Name() string
}

// GenerateMermaid produces a Mermaid flowchart of the author tree.
// It applies semantic styling:
// - Keyless root (always active): ((Circle))
// - Grouping entry without text: [[Subroutine]]
// - Default: [Rectangle]
// Edges to children that replace their inherited keys are dotted.
func GenerateMermaid(entries []builder.Entry, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[string]string)
	for i, e := range entries {
		writeEntry(&sb, e, fmt.Sprintf("n%d", i), "", true, ids)
	}

	if overlay != nil && len(overlay.Flagged) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef flagged fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		seen := make(map[string]bool)
		for _, name := range overlay.Flagged {
			id, ok := ids[name]
			if !ok {
				id, ok = ids[builder.EntryName(name)]
			}
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s flagged;\n", id))
		}
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, e builder.Entry, id, prefix string, root bool, ids map[string]string) {
	full := prefix + e.Name
	ids[full] = id

	opener, closer := "[", "]"
	switch {
	case root && len(e.Keys) == 0 && e.BaseKeys.IsZero():
		opener, closer = "((", "))"
	case len(e.Text) == 0:
		opener, closer = "[[", "]]"
	}

	label := escapeLabel(e.Name)
	if len(e.Text) > 1 {
		label += fmt.Sprintf(" ×%d", len(e.Text))
	}
	if n, ok := e.Strategy.(named); ok && n.Name() != "" {
		label += " <br/> " + escapeLabel(n.Name())
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

	for i, sub := range e.SubEntries {
		childID := fmt.Sprintf("%s_%d", id, i)
		arrow := "-->"
		if !sub.BaseKeys.IsZero() {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, childID))
		writeEntry(sb, sub, childID, full+" - ", false, ids)
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
