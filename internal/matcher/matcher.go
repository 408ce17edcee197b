// Package matcher orchestrates feature extraction, weighting and
// classification across a candidate set, producing a ranked and explained
// result list. A match run is a pure function of its inputs plus
// configuration: no input entity is mutated and identical inputs yield
// byte-identical output, as required for reproducible screening audits.
package matcher

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/watchlist-screener/internal/feature"
	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/registry"
	"github.com/watchlist-screener/internal/scoring"
)

// Matcher scores candidates against queries. Stateless apart from the
// read-only registry, so one Matcher serves concurrent match operations
// without locking.
type Matcher struct {
	registry *registry.Registry
}

// New builds a matcher over the given comparator registry.
func New(reg *registry.Registry) *Matcher {
	return &Matcher{registry: reg}
}

// Match scores every candidate against the query, classifies, deduplicates
// and ranks. Candidates classified no-match are dropped unless the
// configuration keeps them. Per-candidate scoring has no ordering
// dependency and fans out across workers; the sort is a sequential barrier
// once all scores are in.
func (m *Matcher) Match(ctx context.Context, query *model.Entity, candidates []*model.Entity, cfg scoring.Config) ([]model.MatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := m.registry.Schemas().Get(query.Schema); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []model.MatchResult{}, nil
	}

	results := make([]model.MatchResult, len(candidates))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			res, err := m.score(query, cand, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rank(results, cfg), nil
}

// score computes the full breakdown and aggregate for one candidate.
func (m *Matcher) score(query, candidate *model.Entity, cfg scoring.Config) (model.MatchResult, error) {
	gate, err := feature.SchemaGate(m.registry.Schemas(), query.Schema, candidate.Schema)
	if err != nil {
		return model.MatchResult{}, err
	}

	features := []model.FeatureScore{gate}
	if gate.Score > 0 {
		extractors, err := m.registry.Resolve(query.Schema, candidate.Schema)
		if err != nil {
			return model.MatchResult{}, err
		}
		for _, ex := range extractors {
			features = append(features, ex.Compare(
				query.Select(ex.Props...),
				candidate.Select(ex.Props...),
			))
		}
	}

	aggregate := scoring.Aggregate(cfg, features)
	return model.MatchResult{
		Entity:         candidate,
		Score:          aggregate,
		Features:       features,
		Classification: scoring.Classify(cfg, aggregate),
	}, nil
}

// rank deduplicates overlapping retrieval hits by entity id (keeping the
// best score), drops no-matches unless requested, and sorts descending by
// score with the id as deterministic tie-break.
func rank(results []model.MatchResult, cfg scoring.Config) []model.MatchResult {
	best := make(map[string]model.MatchResult, len(results))
	for _, r := range results {
		if prev, ok := best[r.Entity.ID]; !ok || r.Score > prev.Score {
			best[r.Entity.ID] = r
		}
	}

	out := make([]model.MatchResult, 0, len(best))
	for _, r := range best {
		if r.Classification == model.NoMatch && !cfg.IncludeNoMatch {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Entity.ID < out[j].Entity.ID
	})
	return out
}
