package match

import (
	"context"

	"github.com/jonathan/interview-coach/internal/types"
)

// AssessmentBackend produces qualitative judgments the set logic cannot:
// the match narrative and per-answer evaluations. Implementations may call
// an external generative service; the analyzer treats every backend failure
// as recoverable and substitutes the documented defaults.
type AssessmentBackend interface {
	// Assess returns a narrative assessment for the computed match sets.
	Assess(ctx context.Context, input AssessmentInput) (*types.Narrative, error)
	// EvaluateAnswer scores one answer against its question's rubric.
	EvaluateAnswer(ctx context.Context, input EvaluationInput) (*types.Evaluation, error)
}

// AssessmentInput is the context handed to the backend for narrative
// generation.
type AssessmentInput struct {
	JobTitle          string
	JobSummary        string
	Experience        string
	MatchingRequired  []string
	MissingRequired   []string
	MatchingPreferred []string
	MissingPreferred  []string
	AdditionalSkills  []string
	RequiredMatchPct  float64
}

// EvaluationInput is the context handed to the backend for answer scoring.
type EvaluationInput struct {
	Question   types.Question
	AnswerText string
	JobSummary string
	Experience string
}

// DefaultNarrative is the fixed low-confidence fallback used when no backend
// is configured or the backend fails.
func DefaultNarrative() types.Narrative {
	return types.Narrative{
		Score:            5,
		Strengths:        []string{"Unable to assess strengths"},
		DevelopmentAreas: []string{"Unable to assess development areas"},
		FocusAreas:       []string{"General job requirements"},
	}
}

// DefaultEvaluation is the neutral fallback evaluation used when answer
// scoring fails.
func DefaultEvaluation(questionID string) types.Evaluation {
	return types.Evaluation{
		QuestionID: questionID,
		Score:      5,
		Feedback:   "Unable to provide detailed feedback.",
	}
}
