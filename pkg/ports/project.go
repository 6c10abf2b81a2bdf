package ports

import (
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
)

// Project is everything needed to compile one lorebook.
type Project struct {
	// Name is used as the output file name.
	Name     string
	Settings lorebook.Settings
	// Strategy is the root strategy. Nil means a Fixed strategy.
	Strategy  strategy.Strategy
	Overrides lorebook.Config
	// BaseOp is the operator root entries inherit. Nil means phrase.And.
	BaseOp   phrase.Op
	Reversed bool
	Entries  []builder.Entry
}

// BuilderOptions translates the project's root settings into builder options.
func (p *Project) BuilderOptions() []builder.Option {
	opts := []builder.Option{
		builder.WithOverrides(p.Overrides),
		builder.WithReversed(p.Reversed),
	}
	if p.Strategy != nil {
		opts = append(opts, builder.WithStrategy(p.Strategy))
	}
	if p.BaseOp != nil {
		opts = append(opts, builder.WithBaseOp(p.BaseOp))
	}
	return opts
}
