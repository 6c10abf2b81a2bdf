package lorebook

// TrimDirection controls which end of an entry is trimmed when it does not fit.
type TrimDirection string

const (
	TrimBottom TrimDirection = "trimBottom"
	TrimTop    TrimDirection = "trimTop"
	DoNotTrim  TrimDirection = "doNotTrim"
)

// Granularity is the unit used for insertion and trimming.
type Granularity string

const (
	Newline  Granularity = "newline"
	Sentence Granularity = "sentence"
	Token    Granularity = "token"
)

// ContextConfig is the resolved presentation configuration of an entry.
type ContextConfig struct {
	Prefix            string        `json:"prefix"`
	Suffix            string        `json:"suffix"`
	TokenBudget       int           `json:"tokenBudget"`
	ReservedTokens    int           `json:"reservedTokens"`
	BudgetPriority    int           `json:"budgetPriority"`
	TrimDirection     TrimDirection `json:"trimDirection"`
	InsertionType     Granularity   `json:"insertionType"`
	MaximumTrimType   Granularity   `json:"maximumTrimType"`
	InsertionPosition int           `json:"insertionPosition"`
}

// EntryConfig is the resolved activation configuration of an entry.
type EntryConfig struct {
	SearchRange         int  `json:"searchRange"`
	Enabled             bool `json:"enabled"`
	ForceActivation     bool `json:"forceActivation"`
	KeyRelative         bool `json:"keyRelative"`
	NonStoryActivatable bool `json:"nonStoryActivatable"`
}

// DefaultContext returns the consumer application's default presentation settings.
func DefaultContext() ContextConfig {
	return ContextConfig{
		Prefix:            "",
		Suffix:            "\n",
		TokenBudget:       2048,
		ReservedTokens:    0,
		BudgetPriority:    400,
		TrimDirection:     TrimBottom,
		InsertionType:     Newline,
		MaximumTrimType:   Sentence,
		InsertionPosition: -1,
	}
}

// DefaultEntry returns the consumer application's default activation settings.
func DefaultEntry() EntryConfig {
	return EntryConfig{
		SearchRange: 1000,
		Enabled:     true,
	}
}

// ContextOverride is a partial ContextConfig. Nil fields are left untouched.
type ContextOverride struct {
	Prefix            *string        `json:"prefix,omitempty" mapstructure:"prefix"`
	Suffix            *string        `json:"suffix,omitempty" mapstructure:"suffix"`
	TokenBudget       *int           `json:"tokenBudget,omitempty" mapstructure:"tokenBudget"`
	ReservedTokens    *int           `json:"reservedTokens,omitempty" mapstructure:"reservedTokens"`
	BudgetPriority    *int           `json:"budgetPriority,omitempty" mapstructure:"budgetPriority"`
	TrimDirection     *TrimDirection `json:"trimDirection,omitempty" mapstructure:"trimDirection"`
	InsertionType     *Granularity   `json:"insertionType,omitempty" mapstructure:"insertionType"`
	MaximumTrimType   *Granularity   `json:"maximumTrimType,omitempty" mapstructure:"maximumTrimType"`
	InsertionPosition *int           `json:"insertionPosition,omitempty" mapstructure:"insertionPosition"`
}

// EntryOverride is a partial EntryConfig. Nil fields are left untouched.
type EntryOverride struct {
	SearchRange         *int  `json:"searchRange,omitempty" mapstructure:"searchRange"`
	Enabled             *bool `json:"enabled,omitempty" mapstructure:"enabled"`
	ForceActivation     *bool `json:"forceActivation,omitempty" mapstructure:"forceActivation"`
	KeyRelative         *bool `json:"keyRelative,omitempty" mapstructure:"keyRelative"`
	NonStoryActivatable *bool `json:"nonStoryActivatable,omitempty" mapstructure:"nonStoryActivatable"`
}

// Config pairs the two partial configurations an author or strategy may set.
type Config struct {
	Context ContextOverride `json:"context,omitempty" mapstructure:"context"`
	Entry   EntryOverride   `json:"entry,omitempty" mapstructure:"entry"`
}

// Ptr returns a pointer to v, for filling overrides inline.
func Ptr[T any](v T) *T { return &v }

func pick[T any](base, next *T) *T {
	if next != nil {
		return next
	}
	return base
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Merge layers next over o; fields set in next win.
func (o ContextOverride) Merge(next ContextOverride) ContextOverride {
	return ContextOverride{
		Prefix:            pick(o.Prefix, next.Prefix),
		Suffix:            pick(o.Suffix, next.Suffix),
		TokenBudget:       pick(o.TokenBudget, next.TokenBudget),
		ReservedTokens:    pick(o.ReservedTokens, next.ReservedTokens),
		BudgetPriority:    pick(o.BudgetPriority, next.BudgetPriority),
		TrimDirection:     pick(o.TrimDirection, next.TrimDirection),
		InsertionType:     pick(o.InsertionType, next.InsertionType),
		MaximumTrimType:   pick(o.MaximumTrimType, next.MaximumTrimType),
		InsertionPosition: pick(o.InsertionPosition, next.InsertionPosition),
	}
}

// Merge layers next over o; fields set in next win.
func (o EntryOverride) Merge(next EntryOverride) EntryOverride {
	return EntryOverride{
		SearchRange:         pick(o.SearchRange, next.SearchRange),
		Enabled:             pick(o.Enabled, next.Enabled),
		ForceActivation:     pick(o.ForceActivation, next.ForceActivation),
		KeyRelative:         pick(o.KeyRelative, next.KeyRelative),
		NonStoryActivatable: pick(o.NonStoryActivatable, next.NonStoryActivatable),
	}
}

// Merge layers next over c.
func (c Config) Merge(next Config) Config {
	return Config{
		Context: c.Context.Merge(next.Context),
		Entry:   c.Entry.Merge(next.Entry),
	}
}

// IsZero reports whether no field is set.
func (c Config) IsZero() bool {
	return c == Config{}
}

// With returns a copy of c with the override applied.
func (c ContextConfig) With(o ContextOverride) ContextConfig {
	set(&c.Prefix, o.Prefix)
	set(&c.Suffix, o.Suffix)
	set(&c.TokenBudget, o.TokenBudget)
	set(&c.ReservedTokens, o.ReservedTokens)
	set(&c.BudgetPriority, o.BudgetPriority)
	set(&c.TrimDirection, o.TrimDirection)
	set(&c.InsertionType, o.InsertionType)
	set(&c.MaximumTrimType, o.MaximumTrimType)
	set(&c.InsertionPosition, o.InsertionPosition)
	return c
}

// With returns a copy of c with the override applied.
func (c EntryConfig) With(o EntryOverride) EntryConfig {
	set(&c.SearchRange, o.SearchRange)
	set(&c.Enabled, o.Enabled)
	set(&c.ForceActivation, o.ForceActivation)
	set(&c.KeyRelative, o.KeyRelative)
	set(&c.NonStoryActivatable, o.NonStoryActivatable)
	return c
}
