package phrase

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Distance is an inclusive range of intervening words.
type Distance struct {
	Min int
	Max int
}

// DefaultDistance is used by proximity operators when no distance is given.
var DefaultDistance = Distance{Min: 0, Max: 10}

// Within allows up to n intervening words. A non-positive n yields the
// degenerate 0..0 range (adjacent words only).
func Within(n int) Distance {
	if n <= 0 {
		return Distance{}
	}
	return Distance{Min: 0, Max: n}
}

// Between allows from a to b intervening words. Reversed bounds are
// normalized; negative bounds clamp to zero.
func Between(a, b int) Distance {
	lo, hi := max(min(a, b), 0), max(a, b, 0)
	return Distance{Min: lo, Max: hi}
}

// ParseDistance accepts a scalar (see Within) or a two element list (see
// Between). Any other shape fails with ErrDistance.
func ParseDistance(v any) (Distance, error) {
	if n, ok := toInt(v); ok {
		return Within(n), nil
	}
	var pair []any
	switch xs := v.(type) {
	case []any:
		pair = xs
	case []int:
		for _, x := range xs {
			pair = append(pair, x)
		}
	default:
		return Distance{}, fmt.Errorf("%w: expected number or [min, max], got %T", ErrDistance, v)
	}
	if len(pair) != 2 {
		return Distance{}, fmt.Errorf("%w: expected 2 bounds, got %d", ErrDistance, len(pair))
	}
	a, okA := toInt(pair[0])
	b, okB := toInt(pair[1])
	if !okA || !okB {
		return Distance{}, fmt.Errorf("%w: bounds must be whole numbers", ErrDistance)
	}
	return Between(a, b), nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int64(n)) {
			return int(n), true
		}
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ProximityOptions configure Near and Far.
type ProximityOptions struct {
	Distance Distance
	// SameLine keeps both phrases on one line when true.
	SameLine bool
}

// Option mutates ProximityOptions.
type Option func(*ProximityOptions)

// WithDistance sets the word distance.
func WithDistance(d Distance) Option {
	return func(o *ProximityOptions) { o.Distance = d }
}

// SameLine sets whether the phrases must share a line.
func SameLine(v bool) Option {
	return func(o *ProximityOptions) { o.SameLine = v }
}

func resolveOptions(opts []Option) ProximityOptions {
	o := ProximityOptions{Distance: DefaultDistance, SameLine: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	// Near matches left when right occurs within the configured number of words.
	Near = Extended(func(opts ...Option) Combinator {
		o := resolveOptions(opts)
		return func(left, right Phrase) Escaped { return near(left, right, o) }
	})

	// Far matches left only when right does not occur within the configured
	// number of words. The lower bound of the distance is ignored.
	Far = Extended(func(opts ...Option) Combinator {
		o := resolveOptions(opts)
		return func(left, right Phrase) Escaped { return far(left, right, o) }
	})
)

// gaps returns the lookahead and lookbehind bodies that step over between
// lo and hi words separating the two phrases.
func gaps(r string, o ProximityOptions, lo, hi int) (ahead, behind string) {
	sep := `\W+`
	if o.SameLine {
		sep = `[^\w\r\n]+`
	}
	words := "(?:" + sep + `\w+){` + strconv.Itoa(lo) + "," + strconv.Itoa(hi) + "}"
	ahead = `\w*` + words + sep + r
	behind = r + `\w*` + words + sep + `\w*`
	return ahead, behind
}

func near(left, right Phrase, o ProximityOptions) Escaped {
	l, r, ok := operands(left, right)
	if !ok {
		return Escaped{src: l}
	}
	ahead, behind := gaps(r, o, o.Distance.Min, o.Distance.Max)
	return Escaped{src: "(?:(?<=" + behind + ")" + l + "|" + l + "(?=" + ahead + "))"}
}

func far(left, right Phrase, o ProximityOptions) Escaped {
	l, r, ok := operands(left, right)
	if !ok {
		return Escaped{src: l}
	}
	ahead, behind := gaps(r, o, 0, o.Distance.Max)
	return Escaped{src: "(?<!" + behind + ")" + l + "(?!" + ahead + ")"}
}
