package types

// MatchReport is the structured comparison of a candidate's skills against a
// job's required and preferred skills. Reports are derived values: when the
// profile or requirement changes, a new report replaces the old one.
type MatchReport struct {
	MatchingRequired  []string  `json:"matching_required"`
	MissingRequired   []string  `json:"missing_required"`
	MatchingPreferred []string  `json:"matching_preferred"`
	MissingPreferred  []string  `json:"missing_preferred"`
	AdditionalSkills  []string  `json:"additional_skills"`
	RequiredMatchPct  float64   `json:"required_match_pct"`
	Narrative         Narrative `json:"narrative"`
}

// Narrative holds the qualitative assessment produced by an assessment
// backend. When no backend is available (or it fails), a low-confidence
// default narrative is substituted.
type Narrative struct {
	Score            int      `json:"score"` // 1-10
	Strengths        []string `json:"strengths"`
	DevelopmentAreas []string `json:"development_areas"`
	FocusAreas       []string `json:"focus_areas"`
}

// ClampScore forces a narrative score into the valid 1-10 range.
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
