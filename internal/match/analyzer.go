// Package match computes set-based and narrative match analyses between a
// candidate profile and a job requirement.
package match

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/types"
)

// Analyzer computes MatchReports. The set logic is exact and deterministic;
// narrative fields come from the injected assessment backend.
type Analyzer struct {
	backend AssessmentBackend
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer. backend may be nil, in which case every
// report carries the default narrative.
func NewAnalyzer(backend AssessmentBackend, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{backend: backend, logger: logger}
}

// Analyze compares a profile against a requirement. It never fails: backend
// errors degrade to the default narrative.
func (a *Analyzer) Analyze(ctx context.Context, profile *types.NormalizedProfile, requirement *types.NormalizedRequirement) *types.MatchReport {
	candidate := types.NewSkillSet(profile.Skills)
	required := types.NewSkillSet(requirement.RequiredSkills)
	preferred := types.NewSkillSet(requirement.PreferredSkills)

	report := &types.MatchReport{
		MatchingRequired:  intersect(candidate, required),
		MissingRequired:   subtract(required, candidate),
		MatchingPreferred: intersect(candidate, preferred),
		MissingPreferred:  subtract(preferred, candidate),
		AdditionalSkills:  subtract(subtract(candidate, required), preferred),
	}
	report.RequiredMatchPct = matchPct(len(report.MatchingRequired), len(required))
	report.Narrative = a.narrative(ctx, profile, requirement, report)

	return report
}

// EvaluateAnswer scores one answer via the assessment backend, falling back
// to the neutral default evaluation on any failure.
func (a *Analyzer) EvaluateAnswer(ctx context.Context, input EvaluationInput) types.Evaluation {
	if a.backend == nil {
		return DefaultEvaluation(input.Question.ID)
	}
	eval, err := a.backend.EvaluateAnswer(ctx, input)
	if err != nil || eval == nil {
		a.logger.Warn("answer evaluation failed, using default",
			zap.String("question_id", input.Question.ID),
			zap.Error(err))
		return DefaultEvaluation(input.Question.ID)
	}
	eval.QuestionID = input.Question.ID
	eval.Score = clampScore(eval.Score)
	return *eval
}

func (a *Analyzer) narrative(ctx context.Context, profile *types.NormalizedProfile, requirement *types.NormalizedRequirement, report *types.MatchReport) types.Narrative {
	if a.backend == nil {
		return DefaultNarrative()
	}

	narrative, err := a.backend.Assess(ctx, AssessmentInput{
		JobTitle:          requirement.Title,
		JobSummary:        requirement.Summary,
		Experience:        profile.Sections["experience"],
		MatchingRequired:  report.MatchingRequired,
		MissingRequired:   report.MissingRequired,
		MatchingPreferred: report.MatchingPreferred,
		MissingPreferred:  report.MissingPreferred,
		AdditionalSkills:  report.AdditionalSkills,
		RequiredMatchPct:  report.RequiredMatchPct,
	})
	if err != nil || narrative == nil {
		a.logger.Warn("assessment backend failed, using default narrative", zap.Error(err))
		return DefaultNarrative()
	}

	narrative.Score = types.ClampScore(narrative.Score)
	return *narrative
}

// matchPct is |matching| / |required| as a percentage, 0 when the required
// set is empty, capped at 100.
func matchPct(matching, required int) float64 {
	if required == 0 {
		return 0
	}
	pct := float64(matching) / float64(required) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func intersect(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, s := range a {
		if types.HasSkill(b, s) {
			out = append(out, s)
		}
	}
	return out
}

func subtract(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, s := range a {
		if !types.HasSkill(b, s) {
			out = append(out, s)
		}
	}
	return out
}
