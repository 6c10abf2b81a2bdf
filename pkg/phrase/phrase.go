package phrase

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Phrase is anything that can be composed into an Escaped pattern fragment.
// The set of implementations is closed: Escaped, Word, Source and Expr.
type Phrase interface {
	isPhrase()
}

// Escaped is a fully built pattern fragment. The zero value is the empty
// fragment, which composing operators treat as "no phrase".
type Escaped struct {
	src string
}

// Word is a bare keyword. It composes as a Prefix phrase.
type Word string

// Source is the source text of a native pattern. It is used as-is.
type Source string

// Expr is a deferred binary expression. Op may be a Combinator or an Extended
// operator; an Extended operator used here behaves as if called with no options.
type Expr struct {
	Left  Phrase
	Op    Op
	Right Phrase
}

func (Escaped) isPhrase() {}
func (Word) isPhrase()    {}
func (Source) isPhrase()  {}
func (Expr) isPhrase()    {}

// String returns the raw pattern fragment.
func (e Escaped) String() string { return e.src }

// Output returns the delimited, flag-qualified form used in lorebook keys.
func (e Escaped) Output() string { return "/" + e.src + "/i" }

// IsZero reports whether the fragment is empty.
func (e Escaped) IsZero() bool { return e.src == "" }

// IsEscaped reports whether p is already an escaped phrase.
func IsEscaped(p Phrase) bool {
	_, ok := p.(Escaped)
	return ok
}

// FromRegexp extracts the source of a compiled pattern. Options set on the
// pattern, case sensitivity included, do not carry over.
func FromRegexp(re *regexp2.Regexp) Source {
	return Source(re.String())
}

// Compose coerces p into an Escaped phrase. It is idempotent: composing an
// Escaped value returns it unchanged.
func Compose(p Phrase) Escaped {
	switch v := p.(type) {
	case Escaped:
		return v
	case Expr:
		if v.Op == nil {
			return Compose(v.Left)
		}
		return v.Op.Combine(v.Left, v.Right)
	case Source:
		return Escaped{src: string(v)}
	case Word:
		return Prefix(string(v))
	default:
		return Escaped{}
	}
}

// ComposeAll composes every phrase in order.
func ComposeAll(phrases ...Phrase) []Escaped {
	out := make([]Escaped, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, Compose(p))
	}
	return out
}

// Words converts plain strings into Word phrases.
func Words(words ...string) []Phrase {
	out := make([]Phrase, len(words))
	for i, w := range words {
		out[i] = Word(w)
	}
	return out
}

const metaChars = `\^$.|?*+()[]{}/`

// Escape quotes every pattern metacharacter in s, the delimiter included.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(metaChars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// atom returns src in a form that can be concatenated with other fragments
// without a top-level alternation leaking out.
func atom(src string) string {
	if hasTopLevelAlt(src) {
		return "(?:" + src + ")"
	}
	return src
}

func hasTopLevelAlt(src string) bool {
	depth := 0
	inClass := false
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == '|' && depth == 0:
			return true
		}
	}
	return false
}
