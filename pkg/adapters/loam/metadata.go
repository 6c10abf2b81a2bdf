package loam

// TextMetadata is the frontmatter of a text document.
type TextMetadata struct {
	// Texts, when set, are used instead of the body.
	Texts []string `json:"texts" mapstructure:"texts"`
	// Split cuts the body into several blocks at every line equal to it.
	Split string `json:"split" mapstructure:"split"`
}
