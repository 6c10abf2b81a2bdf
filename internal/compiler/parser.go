package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"gopkg.in/yaml.v3"
)

// rawProject is the top level of a project file.
type rawProject struct {
	Name       string         `yaml:"name"`
	Settings   map[string]any `yaml:"settings"`
	Reversed   bool           `yaml:"reversed"`
	BaseOp     string         `yaml:"baseOp"`
	Config     map[string]any `yaml:"config"`
	Strategy   any            `yaml:"strategy"`
	Strategies map[string]any `yaml:"strategies"`
	Entries    []rawEntry     `yaml:"entries"`
}

type rawEntry struct {
	Name       string         `yaml:"name"`
	Keys       []any          `yaml:"keys"`
	Text       any            `yaml:"text"`
	TextFrom   any            `yaml:"textFrom"`
	Strategy   any            `yaml:"strategy"`
	Config     map[string]any `yaml:"config"`
	BaseOp     string         `yaml:"baseOp"`
	SubOp      string         `yaml:"subOp"`
	BaseKeys   any            `yaml:"baseKeys"`
	SubEntries []rawEntry     `yaml:"subEntries"`
}

// Parser is responsible for converting project files into a ports.Project.
type Parser struct {
	texts ports.TextSource
}

// Option configures a Parser.
type Option func(*Parser)

// WithTextSource resolves textFrom references through ts.
func WithTextSource(ts ports.TextSource) Option {
	return func(p *Parser) { p.texts = ts }
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a YAML project. Every call builds new strategy instances.
func (p *Parser) Parse(ctx context.Context, data []byte) (*ports.Project, error) {
	var raw rawProject
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}

	project := &ports.Project{Name: raw.Name, Reversed: raw.Reversed}

	if len(raw.Settings) > 0 {
		if err := decodeStrict(raw.Settings, &project.Settings); err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
	}

	var err error
	if project.Overrides, err = ParseConfig(raw.Config); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if project.BaseOp, err = ParseOp(raw.BaseOp); err != nil {
		return nil, fmt.Errorf("baseOp: %w", err)
	}

	named, err := newStrategies(raw.Strategies)
	if err != nil {
		return nil, err
	}
	if project.Strategy, err = named.resolve(raw.Strategy); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}

	s := &session{parser: p, strategies: named}
	project.Entries = make([]builder.Entry, 0, len(raw.Entries))
	for i, re := range raw.Entries {
		e, err := s.entry(ctx, re, fmt.Sprintf("entries[%d]", i))
		if err != nil {
			return nil, err
		}
		project.Entries = append(project.Entries, e)
	}
	return project, nil
}

// session carries what one Parse call shares across entries.
type session struct {
	parser     *Parser
	strategies *strategies
}

func (s *session) entry(ctx context.Context, re rawEntry, path string) (builder.Entry, error) {
	wrap := func(field string, err error) error {
		return within(path+"."+field, err)
	}

	if re.Name == "" {
		return builder.Entry{}, fmt.Errorf("%s: %w: entry missing name", path, ErrSyntax)
	}
	e := builder.Entry{Name: re.Name}

	var err error
	if e.Keys, err = ParsePhrases(re.Keys); err != nil {
		return e, wrap("keys", err)
	}
	if e.Text, err = parseText(re.Text); err != nil {
		return e, wrap("text", err)
	}
	if re.TextFrom != nil {
		blocks, err := s.textFrom(ctx, re.TextFrom)
		if err != nil {
			return e, wrap("textFrom", err)
		}
		e.Text = append(e.Text, blocks...)
	}
	if e.Strategy, err = s.strategies.resolve(re.Strategy); err != nil {
		return e, wrap("strategy", err)
	}
	if e.Config, err = ParseConfig(re.Config); err != nil {
		return e, wrap("config", err)
	}
	if e.BaseOp, err = ParseOp(re.BaseOp); err != nil {
		return e, wrap("baseOp", err)
	}
	if e.SubOp, err = ParseOp(re.SubOp); err != nil {
		return e, wrap("subOp", err)
	}
	if e.BaseKeys, err = parseBaseKeys(re.BaseKeys); err != nil {
		return e, wrap("baseKeys", err)
	}

	if len(re.SubEntries) > 0 {
		e.SubEntries = make([]builder.Entry, 0, len(re.SubEntries))
		for i, sub := range re.SubEntries {
			child, err := s.entry(ctx, sub, fmt.Sprintf("%s.subEntries[%d]", path, i))
			if err != nil {
				return e, err
			}
			e.SubEntries = append(e.SubEntries, child)
		}
	}
	return e, nil
}

// textFrom accepts one reference or a list of them.
func (s *session) textFrom(ctx context.Context, v any) ([]string, error) {
	if s.parser.texts == nil {
		return nil, ErrNoTextSource
	}
	refs, err := parseText(v)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, ref := range refs {
		blocks, err := s.parser.texts.Text(ctx, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, blocks...)
	}
	return out, nil
}

// parseText accepts a scalar string or a list of strings.
func parseText(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("[%d]: %w: expected a string, got %T", i, ErrSyntax, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected a string or list of strings, got %T", ErrSyntax, v)
	}
}

// parseBaseKeys accepts a list (explicit keys) or a map with one of
// explicit or exclude.
func parseBaseKeys(v any) (builder.BaseKeys, error) {
	switch val := v.(type) {
	case nil:
		return builder.BaseKeys{}, nil
	case []any:
		keys, err := ParsePhrases(val)
		if err != nil {
			return builder.BaseKeys{}, err
		}
		return builder.ExplicitKeys(keys...), nil
	case map[string]any:
		if len(val) != 1 {
			return builder.BaseKeys{}, fmt.Errorf("%w: baseKeys map takes exactly one of explicit or exclude", ErrSyntax)
		}
		if raw, ok := val["explicit"]; ok {
			keys, err := ParsePhrases(raw)
			if err != nil {
				return builder.BaseKeys{}, within("explicit", err)
			}
			return builder.ExplicitKeys(keys...), nil
		}
		if raw, ok := val["exclude"]; ok {
			keys, err := ParsePhrases(raw)
			if err != nil {
				return builder.BaseKeys{}, within("exclude", err)
			}
			return builder.ExcludeKeys(keys...), nil
		}
		return builder.BaseKeys{}, fmt.Errorf("%w: baseKeys map takes exactly one of explicit or exclude", ErrSyntax)
	default:
		return builder.BaseKeys{}, fmt.Errorf("%w: baseKeys must be a list or map, got %T", ErrSyntax, v)
	}
}
