package lorebook

import (
	"encoding/json"
	"fmt"
)

// Version is the lorebook schema version written to exported files.
const Version = 3

// Record is one flattened, fully resolved lorebook entry.
type Record struct {
	DisplayName         string        `json:"displayName"`
	Text                string        `json:"text"`
	Keys                []string      `json:"keys"`
	ContextConfig       ContextConfig `json:"contextConfig"`
	SearchRange         int           `json:"searchRange"`
	Enabled             bool          `json:"enabled"`
	ForceActivation     bool          `json:"forceActivation"`
	KeyRelative         bool          `json:"keyRelative"`
	NonStoryActivatable bool          `json:"nonStoryActivatable"`
}

// NewRecord assembles a record from its resolved parts. Keys are copied.
func NewRecord(name, text string, keys []string, ctx ContextConfig, entry EntryConfig) Record {
	out := make([]string, len(keys))
	copy(out, keys)
	return Record{
		DisplayName:         name,
		Text:                text,
		Keys:                out,
		ContextConfig:       ctx,
		SearchRange:         entry.SearchRange,
		Enabled:             entry.Enabled,
		ForceActivation:     entry.ForceActivation,
		KeyRelative:         entry.KeyRelative,
		NonStoryActivatable: entry.NonStoryActivatable,
	}
}

// EntryConfig returns the activation half of the record.
func (r Record) EntryConfig() EntryConfig {
	return EntryConfig{
		SearchRange:         r.SearchRange,
		Enabled:             r.Enabled,
		ForceActivation:     r.ForceActivation,
		KeyRelative:         r.KeyRelative,
		NonStoryActivatable: r.NonStoryActivatable,
	}
}

// Settings are the collection-wide lorebook flags.
type Settings struct {
	OrderByKeyLocations bool `json:"orderByKeyLocations" mapstructure:"orderByKeyLocations"`
}

// Lorebook is the document consumed by the third-party tool.
type Lorebook struct {
	LorebookVersion int      `json:"lorebookVersion"`
	Settings        Settings `json:"settings"`
	Entries         []Record `json:"entries"`
}

// New wraps records into a lorebook document.
func New(settings Settings, records []Record) *Lorebook {
	if records == nil {
		records = []Record{}
	}
	return &Lorebook{
		LorebookVersion: Version,
		Settings:        settings,
		Entries:         records,
	}
}

// Marshal serializes the lorebook as indented JSON.
func (l *Lorebook) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lorebook: %w", err)
	}
	return data, nil
}

// Parse decodes a lorebook document.
func Parse(data []byte) (*Lorebook, error) {
	var lb Lorebook
	if err := json.Unmarshal(data, &lb); err != nil {
		return nil, fmt.Errorf("failed to parse lorebook: %w", err)
	}
	return &lb, nil
}
