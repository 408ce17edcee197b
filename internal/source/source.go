// Package source supplies candidate entities for a query. Retrieval is
// recall-oriented: sources may return false positives and never pre-filter
// by schema; precision is the matcher's job.
package source

import (
	"context"

	"github.com/watchlist-screener/internal/model"
)

// Candidate is one retrieved entity with an optional retrieval pre-score.
// The hint orders nothing downstream; the scoring engine recomputes
// similarity from scratch.
type Candidate struct {
	Entity *model.Entity `json:"entity"`
	Hint   float64       `json:"hint,omitempty"`
}

// CandidateSource retrieves a bounded set of plausibly-similar entities.
// Implementations own all I/O concerns (timeouts, retries); the matching
// core never blocks on retrieval.
type CandidateSource interface {
	Retrieve(ctx context.Context, query *model.Entity, limit int) ([]Candidate, error)
}

// Static is an in-memory source over a fixed entity list, used by the CLI
// one-shot mode and tests.
type Static struct {
	Entities []*model.Entity
}

// Retrieve returns up to limit entities in stored order. No similarity
// filtering: the full pool goes to the matcher.
func (s *Static) Retrieve(_ context.Context, _ *model.Entity, limit int) ([]Candidate, error) {
	n := len(s.Entities)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Candidate, 0, n)
	for _, e := range s.Entities[:n] {
		out = append(out, Candidate{Entity: e})
	}
	return out, nil
}
