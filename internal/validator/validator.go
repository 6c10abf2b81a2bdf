package validator

import (
	"fmt"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/dlclark/regexp2"
)

// Report collects every issue found in a lorebook, in record order.
type Report struct {
	Issues []*Issue
}

// Err returns the error-severity issues as an AggregateError, or nil.
func (r *Report) Err() error {
	var errs []error
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			errs = append(errs, is)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

// Warnings returns the warning-severity issues.
func (r *Report) Warnings() []*Issue {
	var out []*Issue
	for _, is := range r.Issues {
		if is.Severity == SeverityWarning {
			out = append(out, is)
		}
	}
	return out
}

func (r *Report) add(sev Severity, i int, rec lorebook.Record, field, format string, args ...any) {
	r.Issues = append(r.Issues, &Issue{
		Entry:    rec.DisplayName,
		Index:    i,
		Field:    field,
		Reason:   fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

var (
	trimDirections = map[lorebook.TrimDirection]bool{
		lorebook.TrimBottom: true, lorebook.TrimTop: true, lorebook.DoNotTrim: true,
	}
	granularities = map[lorebook.Granularity]bool{
		lorebook.Newline: true, lorebook.Sentence: true, lorebook.Token: true,
	}
)

// Validate lints a built lorebook. It never executes keys against text; it
// only proves that each one compiles under a lookbehind-capable engine.
func Validate(lb *lorebook.Lorebook) *Report {
	r := &Report{}
	if lb.LorebookVersion != lorebook.Version {
		r.Issues = append(r.Issues, &Issue{
			Index:    -1,
			Field:    "lorebookVersion",
			Reason:   fmt.Sprintf("expected %d, got %d", lorebook.Version, lb.LorebookVersion),
			Severity: SeverityError,
		})
	}

	seen := make(map[string]int, len(lb.Entries))
	for i, rec := range lb.Entries {
		if rec.DisplayName == "" {
			r.add(SeverityError, i, rec, "displayName", "must not be empty")
		} else if first, ok := seen[rec.DisplayName]; ok {
			r.add(SeverityWarning, i, rec, "displayName", "duplicates entry %d", first)
		} else {
			seen[rec.DisplayName] = i
		}

		for k, key := range rec.Keys {
			if err := CheckKey(key); err != nil {
				r.add(SeverityError, i, rec, fmt.Sprintf("keys[%d]", k), "%v", err)
			}
		}
		if len(rec.Keys) == 0 && rec.Enabled && !rec.ForceActivation {
			r.add(SeverityWarning, i, rec, "keys", "no keys and not forced; the entry can never activate")
		}

		checkContext(r, i, rec)
		if rec.SearchRange < 0 {
			r.add(SeverityError, i, rec, "searchRange", "must not be negative, got %d", rec.SearchRange)
		}
	}
	return r
}

func checkContext(r *Report, i int, rec lorebook.Record) {
	c := rec.ContextConfig
	if c.TokenBudget < 1 {
		r.add(SeverityError, i, rec, "contextConfig.tokenBudget", "must be positive, got %d", c.TokenBudget)
	}
	if c.ReservedTokens < 0 {
		r.add(SeverityError, i, rec, "contextConfig.reservedTokens", "must not be negative, got %d", c.ReservedTokens)
	} else if c.ReservedTokens > c.TokenBudget && c.TokenBudget > 0 {
		r.add(SeverityWarning, i, rec, "contextConfig.reservedTokens", "%d exceeds the token budget of %d", c.ReservedTokens, c.TokenBudget)
	}
	if !trimDirections[c.TrimDirection] {
		r.add(SeverityError, i, rec, "contextConfig.trimDirection", "unknown value %q", c.TrimDirection)
	}
	if !granularities[c.InsertionType] {
		r.add(SeverityError, i, rec, "contextConfig.insertionType", "unknown value %q", c.InsertionType)
	}
	if !granularities[c.MaximumTrimType] {
		r.add(SeverityError, i, rec, "contextConfig.maximumTrimType", "unknown value %q", c.MaximumTrimType)
	}
}

// CheckKey verifies that an output key is delimiter-wrapped and compiles
// under ECMAScript rules, which is what the consumer application runs.
func CheckKey(key string) error {
	e, err := phrase.Import(key)
	if err != nil {
		return err
	}
	if _, err := regexp2.Compile(e.String(), regexp2.ECMAScript|regexp2.IgnoreCase); err != nil {
		return fmt.Errorf("does not compile: %w", err)
	}
	return nil
}
