package feature

import (
	"math"

	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/normalize"
)

// BirthDate builds the date-overlap extractor for person birth dates.
// decay is the per-year score penalty for near-miss years.
func BirthDate(decay float64) Extractor {
	return dateExtractor(FeatureBirthDate, []string{"birthDate"}, decay)
}

// IncorporationDate is the same comparison over organization founding dates.
func IncorporationDate(decay float64) Extractor {
	return dateExtractor(FeatureIncorporation, []string{"incorporationDate", "buildDate"}, decay)
}

func dateExtractor(name string, props []string, decay float64) Extractor {
	return Extractor{
		Name:  name,
		Props: props,
		Compare: func(query, candidate map[string][]string) model.FeatureScore {
			qDates, qBad := parseDates(pooled(query))
			cDates, cBad := parseDates(pooled(candidate))
			if len(qDates) == 0 || len(cDates) == 0 {
				detail := "no date on one side"
				if qBad || cBad {
					detail = "unparseable date value"
				}
				return model.NotApplicable(name, detail)
			}
			best := 0.0
			for _, q := range qDates {
				for _, c := range cDates {
					if s := dateScore(q, c, decay); s > best {
						best = s
					}
				}
			}
			detail := ""
			if qBad || cBad {
				detail = "some date values unparseable, ignored"
			}
			return model.FeatureScore{Feature: name, Score: best, Applicable: true, Detail: detail}
		},
	}
}

// dateScore compares two partial dates at their coarsest shared precision.
// Exact agreement scores 1.0. Disagreement is scored on distance in years:
// a mismatch below year granularity counts as half a year off, so a
// same-year wrong-month pair still beats a wrong-year pair.
func dateScore(a, b normalize.Date, decay float64) float64 {
	shared := normalize.SharedPrecision(a, b)
	if normalize.EqualAt(a, b, shared) {
		return 1.0
	}
	delta := math.Abs(float64(a.Year - b.Year))
	if delta == 0 {
		delta = 0.5
	}
	score := 1.0 - delta*decay
	if score < 0 {
		return 0.0
	}
	return score
}

func parseDates(values []string) (dates []normalize.Date, malformed bool) {
	for _, v := range values {
		d, ok := normalize.ParseDate(v)
		if !ok {
			malformed = true
			continue
		}
		dates = append(dates, d)
	}
	return dates, malformed
}
