package ports

import "context"

// TreeLoader defines how the compiler retrieves the author tree.
type TreeLoader interface {
	// Load returns a freshly built project. Strategy instances are created
	// per call, so two loads never share re-application state.
	Load(ctx context.Context) (*Project, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for watch mode.
type Watchable interface {
	// Watch returns a channel that receives the name of whatever changed.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
