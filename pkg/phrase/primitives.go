package phrase

import (
	"fmt"
	"strings"
)

const (
	boundary = `\b`
	openRun  = `\w*`
)

// Exact matches the keyword as a whole word.
func Exact(word string) Escaped {
	return Escaped{src: boundary + Escape(word) + boundary}
}

// Prefix matches the keyword at the start of a word, so suffixed forms
// ("cat" in "cats") match too. Bare strings compose this way.
func Prefix(word string) Escaped {
	return Escaped{src: boundary + Escape(word)}
}

// Postfix matches the keyword at the end of a word ("cat" in "wildcat").
func Postfix(word string) Escaped {
	return Escaped{src: openRun + Escape(word) + boundary}
}

// Open matches the keyword anywhere, including inside a larger word.
func Open(word string) Escaped {
	return Escaped{src: openRun + Escape(word)}
}

// Import extracts the body of a delimited "/pattern/flags" string. The flags
// are discarded. Strings without the delimiters fail with ErrFormat.
func Import(raw string) (Escaped, error) {
	if len(raw) < 2 || raw[0] != '/' {
		return Escaped{}, fmt.Errorf("%w: %q must start with '/'", ErrFormat, raw)
	}
	end := strings.LastIndexByte(raw, '/')
	if end == 0 {
		return Escaped{}, fmt.Errorf("%w: %q has no closing '/'", ErrFormat, raw)
	}
	for _, r := range raw[end+1:] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return Escaped{}, fmt.Errorf("%w: %q has invalid flag %q", ErrFormat, raw, r)
		}
	}
	body := raw[1:end]
	if body == "" {
		return Escaped{}, fmt.Errorf("%w: %q has an empty body", ErrFormat, raw)
	}
	return Escaped{src: body}, nil
}

// MustImport is like Import but panics on malformed input.
// It is meant for package-level pattern tables.
func MustImport(raw string) Escaped {
	e, err := Import(raw)
	if err != nil {
		panic(err)
	}
	return e
}
