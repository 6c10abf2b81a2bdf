/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing lorebook trees.

It allows authors to define entry trees using a type-safe, fluent builder pattern
instead of relying on external YAML files. This is particularly useful for generated
lorebooks, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/dsl"
		"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
	)

	func main() {
		book := dsl.New("kingdom")

		book.Add("Alice").
			Words("alice").
			Strategy(strategy.Character()).
			Text("Alice is a knight of the realm.").
			Sub(
				dsl.Entry("Sword").Words("sword", "blade").Text("Alice's sword is named Dawn."),
			)

		// The resulting loader can be passed to lorehelper.Compile.
		loader, err := book.Build()
		// ...
	}
*/
package dsl
