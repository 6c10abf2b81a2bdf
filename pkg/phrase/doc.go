/*
Package phrase is a small algebra for building keyword patterns.

Phrases are literal keywords, raw pattern sources, composed expressions or
escaped phrases. Composing any phrase yields an Escaped value: an immutable,
already-compiled regular expression fragment that is safe to feed into further
operators.

	cat := phrase.Prefix("cat")
	dog := phrase.Exact("dog")

	// "cat" whenever "dog" appears anywhere in the same text.
	both := phrase.And(cat, dog)

	// "cat" within five words of "dog", on the same line.
	nearby := phrase.Near(phrase.WithDistance(phrase.Within(5)))(cat, dog)

	fmt.Println(both.Output()) // "/(?:(?<=\bdog\b[\s\S]*)\bcat|\bcat(?=[\s\S]*\bdog\b))/i"

Every operator anchors on its left operand. The right operand is only ever
inspected through lookaround, so the text a compiled pattern actually consumes
is always the left phrase alone. The emitted patterns target an ECMAScript
style engine with lookbehind support and are always case-insensitive; flags
carried by imported patterns are discarded.
*/
package phrase
