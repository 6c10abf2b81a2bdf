/*
Package lorehelper compiles hierarchical lore trees into NovelAI lorebook files.

Authors describe a tree of entries. Each entry carries its own key phrases
and text, and nested entries inherit their parent's keys. The helper
flattens the tree into lorebook records whose keys are ECMAScript regular
expressions, combining inherited and own phrases with the operators of
package phrase.

# Concept

The work is split into three layers:

  - Phrase algebra (pkg/phrase): word primitives, boolean combinators and
    proximity operators producing escaped regex sources.
  - Configuration strategies (pkg/strategy): how context settings such as
    budget priority and insertion position evolve with depth.
  - Tree builder (pkg/builder): the walk that resolves keys and configs and
    emits records in document order.

Projects are written in Go with the fluent builders of package dsl, or as
YAML files loaded from disk.

# Usage

	package main

	import (
		"context"
		"log"

		lorehelper "github.com/TaleirOfDeynai/NAI-Lore-Helper"
		"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/adapters/memory"
		"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/dsl"
		"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
	)

	func main() {
		book := dsl.New("kingdom").Strategy(strategy.Location())
		book.Add("Kingdom").Words("kingdom", "realm").Text("A small kingdom.").
			Sub(dsl.Entry("Capital").Words("capital").Text("Its capital city."))

		project := book.Project()
		helper := lorehelper.New()

		ctx := context.Background()
		lb, err := helper.Compile(ctx, &project)
		if err != nil {
			log.Fatal(err)
		}
		if err := helper.Export(ctx, lb, project.Name, memory.NewStore()); err != nil {
			log.Fatal(err)
		}
	}
*/
package lorehelper
