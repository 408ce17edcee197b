// Package registry resolves which feature extractors apply to a given pair
// of entity schemas. Resolution is driven entirely by the static schema
// model, never by inspecting what an entity happens to carry at runtime.
package registry

import (
	"sort"

	"github.com/watchlist-screener/internal/feature"
	"github.com/watchlist-screener/internal/phonetics"
	"github.com/watchlist-screener/internal/schema"
)

// Options tunes extractor construction. Zero values select defaults.
type Options struct {
	// YearDecay is the per-year penalty for near-miss date comparisons.
	YearDecay float64
	// Phonetics may be nil to disable the phonetic name signal.
	Phonetics *phonetics.Matcher
}

// DefaultYearDecay gives partial credit down to roughly a two-year miss.
const DefaultYearDecay = 0.35

// Registry holds the fixed extractor set and the schema model it consults.
// Read-only after construction, safe for concurrent use.
type Registry struct {
	schemas    *schema.Registry
	extractors []feature.Extractor
}

// New builds the comparator registry with the full extractor set, ordered
// by feature name so result breakdowns are reproducible run to run.
func New(schemas *schema.Registry, opts Options) *Registry {
	decay := opts.YearDecay
	if decay <= 0 {
		decay = DefaultYearDecay
	}
	ph := opts.Phonetics
	if ph == nil {
		ph = phonetics.New()
	}
	extractors := []feature.Extractor{
		feature.Name(ph),
		feature.Identifier(),
		feature.BirthDate(decay),
		feature.IncorporationDate(decay),
		feature.Country(),
		feature.Nationality(),
		feature.Program(),
		feature.Address(),
	}
	sort.Slice(extractors, func(i, j int) bool {
		return extractors[i].Name < extractors[j].Name
	})
	return &Registry{schemas: schemas, extractors: extractors}
}

// Schemas exposes the underlying schema model.
func (r *Registry) Schemas() *schema.Registry {
	return r.schemas
}

// Resolve returns the extractors applicable to a query/candidate schema
// pair: those whose property domain is legal on both sides. The returned
// order is stable. Unknown schemas surface as *schema.Error.
func (r *Registry) Resolve(querySchema, candidateSchema string) ([]feature.Extractor, error) {
	if _, err := r.schemas.Get(querySchema); err != nil {
		return nil, err
	}
	if _, err := r.schemas.Get(candidateSchema); err != nil {
		return nil, err
	}
	var out []feature.Extractor
	for _, ex := range r.extractors {
		ok, err := r.domainShared(ex.Props, querySchema, candidateSchema)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

// domainShared reports whether any property of the domain is allowed on
// both schemas.
func (r *Registry) domainShared(props []string, a, b string) (bool, error) {
	for _, p := range props {
		onA, err := r.schemas.Allows(a, p)
		if err != nil {
			return false, err
		}
		if !onA {
			continue
		}
		onB, err := r.schemas.Allows(b, p)
		if err != nil {
			return false, err
		}
		if onB {
			return true, nil
		}
	}
	return false, nil
}
