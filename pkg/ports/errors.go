package ports

import "errors"

// ErrNotFound is returned when a referenced text or lorebook does not exist.
var ErrNotFound = errors.New("not found")
