package phrase

import "strings"

// Op combines two phrases into one. Both Combinator and Extended implement it.
type Op interface {
	Combine(left, right Phrase) Escaped
}

// Combinator is a plain binary operator.
type Combinator func(left, right Phrase) Escaped

// Combine calls c.
func (c Combinator) Combine(left, right Phrase) Escaped { return c(left, right) }

// Extended is an operator that takes options before it yields a Combinator.
// Referenced without calling it, it combines with its default options.
type Extended func(opts ...Option) Combinator

// Combine calls the combinator e produces with default options.
func (e Extended) Combine(left, right Phrase) Escaped { return e()(left, right) }

const (
	anyChar  = `[\s\S]`
	lineChar = `[^\r\n]`
)

var (
	// Or is the binary form of Alt.
	Or = Combinator(func(left, right Phrase) Escaped { return Alt(left, right) })

	// And matches left when right occurs anywhere before or after it.
	And = Combinator(func(left, right Phrase) Escaped { return conjoin(left, right, anyChar) })

	// Not matches left only when right occurs nowhere else in the text.
	Not = Combinator(func(left, right Phrase) Escaped { return exclude(left, right, anyChar) })

	// With matches left when right occurs on the same line.
	With = Combinator(func(left, right Phrase) Escaped { return conjoin(left, right, lineChar) })

	// Without matches left only when right does not occur on the same line.
	Without = Combinator(func(left, right Phrase) Escaped { return exclude(left, right, lineChar) })
)

// Alt matches any one of the phrases. Empty phrases are skipped; a single
// remaining phrase is returned as is.
func Alt(phrases ...Phrase) Escaped {
	parts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if e := Compose(p); !e.IsZero() {
			parts = append(parts, e.src)
		}
	}
	switch len(parts) {
	case 0:
		return Escaped{}
	case 1:
		return Escaped{src: parts[0]}
	}
	return Escaped{src: "(?:" + strings.Join(parts, "|") + ")"}
}

func operands(left, right Phrase) (l, r string, ok bool) {
	le, re := Compose(left), Compose(right)
	if re.IsZero() {
		return le.src, "", false
	}
	return atom(le.src), atom(re.src), !le.IsZero()
}

func conjoin(left, right Phrase, span string) Escaped {
	l, r, ok := operands(left, right)
	if !ok {
		return Escaped{src: l}
	}
	gap := span + "*"
	return Escaped{src: "(?:(?<=" + r + gap + ")" + l + "|" + l + "(?=" + gap + r + "))"}
}

func exclude(left, right Phrase, span string) Escaped {
	l, r, ok := operands(left, right)
	if !ok {
		return Escaped{src: l}
	}
	gap := span + "*"
	return Escaped{src: "(?<!" + r + gap + ")" + l + "(?!" + gap + r + ")"}
}
