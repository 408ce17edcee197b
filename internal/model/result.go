package model

// Classification is the three-way screening decision for one candidate.
type Classification string

const (
	Match    Classification = "match"
	Possible Classification = "possible"
	NoMatch  Classification = "no_match"
)

// FeatureScore is the outcome of a single comparison signal between the
// query and one candidate. Applicable is false when either side lacked the
// data to compute the feature meaningfully; such scores carry no weight.
type FeatureScore struct {
	Feature    string  `json:"feature"`
	Score      float64 `json:"score"`
	Applicable bool    `json:"applicable"`
	Detail     string  `json:"detail,omitempty"`
}

// NotApplicable builds the score returned when a feature cannot be computed.
// Absence is not evidence; the weighting model excludes these entirely.
func NotApplicable(feature, detail string) FeatureScore {
	return FeatureScore{Feature: feature, Applicable: false, Detail: detail}
}

// MatchResult is the scored, classified outcome for one candidate. Features
// holds the full per-feature breakdown in stable feature order so the caller
// can render an explanation, not just a number.
type MatchResult struct {
	Entity         *Entity        `json:"entity"`
	Score          float64        `json:"score"`
	Features       []FeatureScore `json:"features"`
	Classification Classification `json:"classification"`
}
