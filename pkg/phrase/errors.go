package phrase

import "errors"

// ErrFormat is returned when a raw pattern import is not wrapped in /.../ delimiters.
var ErrFormat = errors.New("malformed pattern")

// ErrDistance is returned when a proximity distance has an unsupported shape.
var ErrDistance = errors.New("invalid distance")
