// Package feature implements the comparison signals computed between a
// query entity and one candidate. Every extractor is a pure function over
// the value sequences of one property domain; missing or malformed data
// degrades to a not-applicable score, never to an error.
package feature

import (
	"sort"

	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/schema"
)

// Feature names, stable across releases; they key the weight configuration
// and the per-feature breakdown in results.
const (
	FeatureName          = "name"
	FeatureIdentifier    = "identifier"
	FeatureBirthDate     = "birth_date"
	FeatureIncorporation = "incorporation_date"
	FeatureCountry       = "country"
	FeatureNationality   = "nationality"
	FeatureProgram       = "program"
	FeatureAddress       = "address"
	FeatureSchema        = "schema"
)

// Extractor computes one FeatureScore from the values of its property
// domain on both sides, keyed by property name. Most extractors pool the
// domain into one value sequence; extractors whose values only carry
// meaning within a single property compare per property. Compare must be
// pure and deterministic.
type Extractor struct {
	Name    string
	Props   []string
	Compare func(query, candidate map[string][]string) model.FeatureScore
}

// pooled flattens a property-keyed value map into one sequence, in
// deterministic property order.
func pooled(vals map[string][]string) []string {
	props := make([]string, 0, len(vals))
	for p := range vals {
		props = append(props, p)
	}
	sort.Strings(props)
	var out []string
	for _, p := range props {
		out = append(out, vals[p]...)
	}
	return out
}

// SchemaGate is the binary compatibility check between the query and
// candidate schemas. A 0.0 here forces the aggregate to zero regardless of
// every other signal; a Person can never match a Vessel no matter how
// similar the names.
func SchemaGate(reg *schema.Registry, querySchema, candidateSchema string) (model.FeatureScore, error) {
	ok, err := reg.Compatible(querySchema, candidateSchema)
	if err != nil {
		return model.FeatureScore{}, err
	}
	score := 0.0
	if ok {
		score = 1.0
	}
	return model.FeatureScore{Feature: FeatureSchema, Score: score, Applicable: true}, nil
}
