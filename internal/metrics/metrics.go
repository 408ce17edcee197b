package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the screening service.
type Metrics struct {
	MatchRequests    *prometheus.CounterVec
	CandidatesScored prometheus.Counter
	TopScore         prometheus.Histogram
	MatchDuration    prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		MatchRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "screener_match_requests_total",
			Help: "Match operations processed, labelled by top classification.",
		}, []string{"classification"}),
		CandidatesScored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "screener_candidates_scored_total",
			Help: "Candidate entities scored across all match operations.",
		}),
		TopScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "screener_top_score",
			Help:    "Aggregate score of the best-ranked candidate per match.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		MatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "screener_match_duration_seconds",
			Help:    "Wall time of one match operation including retrieval.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
