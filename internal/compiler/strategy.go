package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/strategy"
	"github.com/mitchellh/mapstructure"
)

// strategySpec is the long form of a strategy declaration.
type strategySpec struct {
	// Type is "fixed", "incrementing" or a preset name.
	Type          string         `mapstructure:"type"`
	Name          string         `mapstructure:"name"`
	PriorityDelta *int           `mapstructure:"priorityDelta"`
	SearchDelta   *int           `mapstructure:"searchDelta"`
	Config        map[string]any `mapstructure:"config"`
}

// strategies resolves strategy references inside one project. Named
// strategies are built once, so every reference shares an instance.
type strategies struct {
	named map[string]strategy.Strategy
}

func newStrategies(raw map[string]any) (*strategies, error) {
	s := &strategies{named: make(map[string]strategy.Strategy, len(raw))}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		built, err := buildStrategy(raw[name], name)
		if err != nil {
			return nil, fmt.Errorf("strategies.%s: %w", name, err)
		}
		s.named[name] = built
	}
	return s, nil
}

// resolve returns nil for a nil reference, the shared instance for a named
// reference, and a fresh instance for anything else.
func (s *strategies) resolve(v any) (strategy.Strategy, error) {
	if v == nil {
		return nil, nil
	}
	if name, ok := v.(string); ok {
		if shared, ok := s.named[name]; ok {
			return shared, nil
		}
	}
	return buildStrategy(v, "")
}

func buildStrategy(v any, label string) (strategy.Strategy, error) {
	var spec strategySpec
	switch val := v.(type) {
	case string:
		spec.Type = val
	case map[string]any:
		if err := decodeStrict(val, &spec); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: strategy must be a string or map, got %T", ErrSyntax, v)
	}
	if spec.Name == "" {
		spec.Name = label
	}

	cfg, err := ParseConfig(spec.Config)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	kind := strings.ToLower(strings.TrimSpace(spec.Type))
	if kind == "fixed" {
		if spec.PriorityDelta != nil || spec.SearchDelta != nil {
			return nil, fmt.Errorf("%w: fixed strategies take no deltas", ErrSyntax)
		}
		return strategy.NewFixed(cfg), nil
	}

	opts := []strategy.Option{strategy.WithDefaults(cfg)}
	if spec.PriorityDelta != nil {
		opts = append(opts, strategy.WithPriorityDelta(*spec.PriorityDelta))
	}
	if spec.SearchDelta != nil {
		opts = append(opts, strategy.WithSearchDelta(*spec.SearchDelta))
	}
	if spec.Name != "" {
		opts = append(opts, strategy.WithName(spec.Name))
	}

	if kind == "incrementing" {
		return strategy.NewIncrementing(lorebook.Config{}, opts...), nil
	}
	preset, ok := strategy.LookupPreset(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q (presets: %s)", ErrUnknownStrategy, spec.Type, strings.Join(strategy.Presets(), ", "))
	}
	return preset.New(opts...), nil
}

// ParseConfig decodes a {context, entry} override map.
func ParseConfig(raw map[string]any) (lorebook.Config, error) {
	var cfg lorebook.Config
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := decodeStrict(raw, &cfg); err != nil {
		return lorebook.Config{}, err
	}
	return cfg, nil
}

// decodeStrict decodes with mapstructure, rejecting unknown keys.
func decodeStrict(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return nil
}
