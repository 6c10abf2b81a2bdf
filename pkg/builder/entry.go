package builder

import (
	"slices"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
)

// Entry is one node of the author's tree.
type Entry struct {
	Name string
	// Keys are the node's own phrases. Empty means the node only inherits.
	Keys []phrase.Phrase
	// Text holds one block per emitted record.
	Text       []string
	SubEntries []Entry
	// Strategy defaults to the nearest ancestor's.
	Strategy strategy.Strategy
	Config   lorebook.Config
	// BaseOp combines this node's keys with the inherited ones.
	BaseOp phrase.Op
	// SubOp becomes the inherited BaseOp of the children.
	SubOp    phrase.Op
	BaseKeys BaseKeys
}

type baseKeysKind int

const (
	inheritKeys baseKeysKind = iota
	explicitKeys
	transformKeys
)

// BaseKeys replaces the keys a node inherits from its parent. The zero value
// inherits them unchanged.
type BaseKeys struct {
	kind      baseKeysKind
	keys      []phrase.Escaped
	transform func([]phrase.Escaped) []phrase.Escaped
}

// ExplicitKeys ignores the parent's keys and uses these instead.
func ExplicitKeys(keys ...phrase.Phrase) BaseKeys {
	return BaseKeys{kind: explicitKeys, keys: phrase.ComposeAll(keys...)}
}

// TransformKeys derives the base keys from the parent's effective keys.
// fn receives a copy and must return the replacement list.
func TransformKeys(fn func(parent []phrase.Escaped) []phrase.Escaped) BaseKeys {
	return BaseKeys{kind: transformKeys, transform: fn}
}

// ExcludeKeys drops inherited keys equal to any of the given phrases.
func ExcludeKeys(drop ...phrase.Phrase) BaseKeys {
	excluded := phrase.ComposeAll(drop...)
	return TransformKeys(func(parent []phrase.Escaped) []phrase.Escaped {
		return slices.DeleteFunc(parent, func(k phrase.Escaped) bool {
			return slices.Contains(excluded, k)
		})
	})
}

// IsZero reports whether the parent's keys are inherited unchanged.
func (b BaseKeys) IsZero() bool { return b.kind == inheritKeys }

func (b BaseKeys) resolve(parent []phrase.Escaped) []phrase.Escaped {
	switch b.kind {
	case explicitKeys:
		return slices.Clone(b.keys)
	case transformKeys:
		if b.transform == nil {
			return slices.Clone(parent)
		}
		return b.transform(slices.Clone(parent))
	default:
		return parent
	}
}

// CombineKeys joins a node's own keys with its base keys. Each own key is
// paired with the alternation of all base keys, so the result has one key per
// own key. Either side being empty yields the other unchanged.
func CombineKeys(base, own []phrase.Escaped, op phrase.Op) []phrase.Escaped {
	if len(base) == 0 {
		return own
	}
	if len(own) == 0 {
		return base
	}
	parents := make([]phrase.Phrase, len(base))
	for i, k := range base {
		parents[i] = k
	}
	anyParent := phrase.Alt(parents...)

	out := make([]phrase.Escaped, len(own))
	for i, k := range own {
		out[i] = op.Combine(k, anyParent)
	}
	return out
}
