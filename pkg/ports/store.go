package ports

import "context"

// LorebookWriter persists a serialized lorebook under a name.
type LorebookWriter interface {
	Write(ctx context.Context, name string, data []byte) error
}

// LorebookStore is a LorebookWriter that can also read back what it wrote.
type LorebookStore interface {
	LorebookWriter

	// Read returns the data stored under name.
	// Returns ErrNotFound if nothing was written under that name.
	Read(ctx context.Context, name string) ([]byte, error)

	// List returns the stored names in lexical order.
	List(ctx context.Context) ([]string, error)
}
