package ports

import "context"

// TextSource resolves a text reference to one or more text blocks.
type TextSource interface {
	// Text returns the blocks stored under ref, in order.
	// Returns ErrNotFound if ref does not exist.
	Text(ctx context.Context, ref string) ([]string, error)
}
