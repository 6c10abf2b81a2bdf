package phrase

import (
	"sort"
	"strings"
)

var operators = map[string]Op{
	"or":      Or,
	"alt":     Or,
	"and":     And,
	"not":     Not,
	"with":    With,
	"without": Without,
	"near":    Near,
	"far":     Far,
}

// Lookup returns the operator registered under name (case-insensitive).
// Extended operators are returned uncalled, so they combine with defaults.
func Lookup(name string) (Op, bool) {
	op, ok := operators[strings.ToLower(strings.TrimSpace(name))]
	return op, ok
}

// Operators lists the registered operator names.
func Operators() []string {
	names := make([]string, 0, len(operators))
	for name := range operators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
