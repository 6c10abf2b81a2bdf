package strategy

import (
	"sort"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
)

// Preset is a named bundle of Incrementing defaults.
type Preset struct {
	Name              string
	BudgetPriority    int
	SearchRange       int
	ReservedTokens    int
	InsertionPosition int
}

var (
	ConceptPreset   = Preset{Name: "concept", BudgetPriority: 200, SearchRange: 2048, ReservedTokens: 0, InsertionPosition: -1}
	FactionPreset   = Preset{Name: "faction", BudgetPriority: 300, SearchRange: 1024, ReservedTokens: 25, InsertionPosition: -1}
	LocationPreset  = Preset{Name: "location", BudgetPriority: 300, SearchRange: 1024, ReservedTokens: 0, InsertionPosition: -1}
	ItemPreset      = Preset{Name: "item", BudgetPriority: 350, SearchRange: 512, ReservedTokens: 0, InsertionPosition: -1}
	CharacterPreset = Preset{Name: "character", BudgetPriority: 400, SearchRange: 1024, ReservedTokens: 100, InsertionPosition: -1}
	NotePreset      = Preset{Name: "note", BudgetPriority: 600, SearchRange: 512, ReservedTokens: 50, InsertionPosition: -4}
)

var presets = map[string]Preset{}

func init() {
	for _, p := range []Preset{ConceptPreset, FactionPreset, LocationPreset, ItemPreset, CharacterPreset, NotePreset} {
		presets[p.Name] = p
	}
}

// Config returns the preset as a partial configuration.
func (p Preset) Config() lorebook.Config {
	return lorebook.Config{
		Context: lorebook.ContextOverride{
			BudgetPriority:    lorebook.Ptr(p.BudgetPriority),
			ReservedTokens:    lorebook.Ptr(p.ReservedTokens),
			InsertionPosition: lorebook.Ptr(p.InsertionPosition),
		},
		Entry: lorebook.EntryOverride{
			SearchRange: lorebook.Ptr(p.SearchRange),
		},
	}
}

// New builds a fresh Incrementing instance from the preset.
func (p Preset) New(opts ...Option) *Incrementing {
	return NewIncrementing(p.Config(), append([]Option{WithName(p.Name)}, opts...)...)
}

// LookupPreset finds a preset by name (case-insensitive).
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Presets lists the known preset names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Concept(opts ...Option) *Incrementing   { return ConceptPreset.New(opts...) }
func Faction(opts ...Option) *Incrementing   { return FactionPreset.New(opts...) }
func Location(opts ...Option) *Incrementing  { return LocationPreset.New(opts...) }
func Item(opts ...Option) *Incrementing      { return ItemPreset.New(opts...) }
func Character(opts ...Option) *Incrementing { return CharacterPreset.New(opts...) }
func Note(opts ...Option) *Incrementing      { return NotePreset.New(opts...) }
