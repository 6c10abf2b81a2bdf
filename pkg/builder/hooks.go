package builder

import "github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"

// EntryEvent describes a visited node.
type EntryEvent struct {
	Name     string
	Depth    int
	Keys     int
	Texts    int
	Children int
	Strategy uint64
}

// RecordEvent describes an emitted record.
type RecordEvent struct {
	Record lorebook.Record
	Depth  int
}

// Hooks are optional callbacks invoked during Build.
type Hooks struct {
	OnEntry  func(*EntryEvent)
	OnRecord func(*RecordEvent)
}

// Chain combines several hooks; each callback runs in order.
func Chain(hooks ...Hooks) Hooks {
	return Hooks{
		OnEntry: func(e *EntryEvent) {
			for _, h := range hooks {
				if h.OnEntry != nil {
					h.OnEntry(e)
				}
			}
		},
		OnRecord: func(e *RecordEvent) {
			for _, h := range hooks {
				if h.OnRecord != nil {
					h.OnRecord(e)
				}
			}
		},
	}
}
