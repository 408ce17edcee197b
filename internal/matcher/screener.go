package matcher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/metrics"
	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/scoring"
	"github.com/watchlist-screener/internal/source"
)

// Screener ties candidate retrieval to the matcher for end-to-end
// screening of one query. Retrieval completes before any scoring begins;
// the scoring phase itself never touches I/O.
type Screener struct {
	source  source.CandidateSource
	matcher *Matcher
	limit   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewScreener builds a screener. limit bounds the retrieval pool; metrics
// may be nil when the caller does not export any.
func NewScreener(src source.CandidateSource, m *Matcher, limit int, log *zap.Logger, met *metrics.Metrics) *Screener {
	if limit <= 0 {
		limit = 10
	}
	return &Screener{source: src, matcher: m, limit: limit, log: log, metrics: met}
}

// Screen retrieves candidates for the query and returns the ranked,
// classified results.
func (s *Screener) Screen(ctx context.Context, query *model.Entity, cfg scoring.Config) ([]model.MatchResult, error) {
	start := time.Now()

	pool, err := s.source.Retrieve(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}
	candidates := make([]*model.Entity, len(pool))
	for i, c := range pool {
		candidates[i] = c.Entity
	}

	results, err := s.matcher.Match(ctx, query, candidates, cfg)
	if err != nil {
		return nil, err
	}

	top := string(model.NoMatch)
	topScore := 0.0
	if len(results) > 0 {
		top = string(results[0].Classification)
		topScore = results[0].Score
	}
	if s.metrics != nil {
		s.metrics.MatchRequests.WithLabelValues(top).Inc()
		s.metrics.CandidatesScored.Add(float64(len(candidates)))
		s.metrics.TopScore.Observe(topScore)
		s.metrics.MatchDuration.Observe(time.Since(start).Seconds())
	}
	s.log.Info("screened query",
		zap.String("schema", query.Schema),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.String("top", top),
		zap.Float64("top_score", topScore),
		zap.Duration("took", time.Since(start)))
	return results, nil
}
