// Package scoring combines per-feature evidence into one calibrated
// aggregate score. The model is two-tier: a renormalized weighted average
// over soft evidence, plus hard overrides for exact identifiers and schema
// compatibility.
package scoring

import (
	"fmt"

	"github.com/watchlist-screener/internal/feature"
)

// ConfigError reports an invalid scoring configuration. Construction fails
// fast; a bad configuration must never silently produce a usable-looking
// result.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid scoring config: %s %s", e.Field, e.Reason)
}

// Config is the immutable per-invocation scoring configuration. Process
// defaults come from Default(); callers may override any field and must
// revalidate.
type Config struct {
	// MatchThreshold and PossibleThreshold cut the score range into the
	// three classifications. MatchThreshold must be the larger.
	MatchThreshold    float64
	PossibleThreshold float64

	// IncludeNoMatch keeps no-match candidates in the returned list.
	IncludeNoMatch bool

	// Weights maps feature name to its base weight. Features absent from
	// the map fall back to the default weight table.
	Weights map[string]float64

	// IdentifierFloor is the minimum aggregate when an identifier matches
	// exactly: an exact government ID hit is near-conclusive.
	IdentifierFloor float64

	// MismatchMargin is how far below MatchThreshold the aggregate is
	// capped when identifiers are present on both sides and disagree.
	// Strictly positive: the cap always lands below the threshold.
	MismatchMargin float64

	// YearDecay is the per-year penalty for near-miss date comparisons.
	YearDecay float64
}

// defaultWeights is the base evidence weight per feature. Identifier
// carries full weight on top of its override behaviour.
var defaultWeights = map[string]float64{
	feature.FeatureName:          0.6,
	feature.FeatureIdentifier:    1.0,
	feature.FeatureBirthDate:     0.3,
	feature.FeatureIncorporation: 0.3,
	feature.FeatureCountry:       0.1,
	feature.FeatureNationality:   0.1,
	feature.FeatureProgram:       0.1,
	feature.FeatureAddress:       0.15,
}

// Default returns the process-wide default configuration. It always
// validates.
func Default() Config {
	return Config{
		MatchThreshold:    0.7,
		PossibleThreshold: 0.5,
		IdentifierFloor:   0.95,
		MismatchMargin:    0.1,
		YearDecay:         0.35,
	}
}

// Validate checks every invariant and returns a *ConfigError on the first
// violation.
func (c Config) Validate() error {
	if c.MatchThreshold <= 0 || c.MatchThreshold >= 1 {
		return &ConfigError{"match_threshold", "must be in (0,1)"}
	}
	if c.PossibleThreshold <= 0 || c.PossibleThreshold >= 1 {
		return &ConfigError{"possible_threshold", "must be in (0,1)"}
	}
	if c.PossibleThreshold >= c.MatchThreshold {
		return &ConfigError{"possible_threshold", "must be below match_threshold"}
	}
	for name, w := range c.Weights {
		if w < 0 {
			return &ConfigError{"weights." + name, "must not be negative"}
		}
	}
	if c.IdentifierFloor <= 0 || c.IdentifierFloor > 1 {
		return &ConfigError{"identifier_floor", "must be in (0,1]"}
	}
	if c.MismatchMargin <= 0 || c.MismatchMargin > c.MatchThreshold {
		return &ConfigError{"mismatch_margin", "must be in (0,match_threshold]"}
	}
	if c.YearDecay <= 0 || c.YearDecay > 1 {
		return &ConfigError{"year_decay", "must be in (0,1]"}
	}
	return nil
}

// weight resolves a feature's weight: caller override first, then the
// default table. Unknown features carry no weight.
func (c Config) weight(name string) float64 {
	if w, ok := c.Weights[name]; ok {
		return w
	}
	return defaultWeights[name]
}
