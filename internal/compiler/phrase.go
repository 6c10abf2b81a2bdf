package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
)

var primitives = map[string]func(string) phrase.Escaped{
	"exact":   phrase.Exact,
	"prefix":  phrase.Prefix,
	"postfix": phrase.Postfix,
	"open":    phrase.Open,
}

// ParsePhrase decodes one key. A string is a word, unless it is wrapped in
// slashes, in which case it is imported as a pattern. A map names exactly one
// primitive or operator.
func ParsePhrase(v any) (phrase.Phrase, error) {
	switch val := v.(type) {
	case string:
		if strings.HasPrefix(val, "/") {
			return phrase.Import(val)
		}
		return phrase.Word(val), nil
	case map[string]any:
		return parsePhraseMap(val)
	default:
		return nil, fmt.Errorf("%w: phrase must be a string or map, got %T", ErrSyntax, v)
	}
}

// ParsePhrases decodes a list of keys.
func ParsePhrases(v any) ([]phrase.Phrase, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of phrases, got %T", ErrSyntax, v)
	}
	out := make([]phrase.Phrase, 0, len(list))
	for i, item := range list {
		p, err := ParsePhrase(item)
		if err != nil {
			return nil, &itemError{Index: i, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePhraseMap(m map[string]any) (phrase.Phrase, error) {
	var op string
	for k := range m {
		if k == "distance" || k == "sameLine" {
			continue
		}
		if op != "" {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("%w: phrase map has more than one operator: %s", ErrSyntax, strings.Join(keys, ", "))
		}
		op = k
	}
	if op == "" {
		return nil, fmt.Errorf("%w: phrase map names no operator", ErrSyntax)
	}
	arg := m[op]

	if build, ok := primitives[op]; ok {
		s, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a string, got %T", ErrSyntax, op, arg)
		}
		return build(s), nil
	}

	switch op {
	case "raw":
		s, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("%w: raw expects a string, got %T", ErrSyntax, arg)
		}
		return phrase.Import(s)
	case "or", "alt":
		parts, err := ParsePhrases(arg)
		if err != nil {
			return nil, within(op, err)
		}
		return phrase.Alt(parts...), nil
	}

	operator, ok := phrase.Lookup(op)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	parts, err := ParsePhrases(arg)
	if err != nil {
		return nil, within(op, err)
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %s expects exactly two phrases, got %d", ErrSyntax, op, len(parts))
	}

	if ext, ok := operator.(phrase.Extended); ok {
		opts, err := proximityOptions(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return ext(opts...)(parts[0], parts[1]), nil
	}
	return phrase.Expr{Left: parts[0], Op: operator, Right: parts[1]}, nil
}

func proximityOptions(m map[string]any) ([]phrase.Option, error) {
	var opts []phrase.Option
	if raw, ok := m["distance"]; ok {
		d, err := phrase.ParseDistance(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, phrase.WithDistance(d))
	}
	if raw, ok := m["sameLine"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: sameLine expects a bool, got %T", ErrSyntax, raw)
		}
		opts = append(opts, phrase.SameLine(b))
	}
	return opts, nil
}

// ParseOp resolves an operator name. An empty name yields nil.
func ParseOp(name string) (phrase.Op, error) {
	if name == "" {
		return nil, nil
	}
	op, ok := phrase.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return op, nil
}
