package match

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// GeminiBackend implements AssessmentBackend on top of the llm client.
type GeminiBackend struct {
	client llm.Client
}

// NewGeminiBackend creates an assessment backend backed by an LLM client.
func NewGeminiBackend(client llm.Client) *GeminiBackend {
	return &GeminiBackend{client: client}
}

// narrativeResponse is the expected JSON shape for match narratives.
type narrativeResponse struct {
	Score            int      `json:"score"`
	Strengths        []string `json:"strengths"`
	DevelopmentAreas []string `json:"development_areas"`
	FocusAreas       []string `json:"focus_areas"`
}

// evaluationResponse is the expected JSON shape for answer evaluations.
type evaluationResponse struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Assess generates the match narrative via the LLM.
func (b *GeminiBackend) Assess(ctx context.Context, input AssessmentInput) (*types.Narrative, error) {
	template := prompts.MustGet("assessment.json", "match-narrative")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":          input.JobTitle,
		"JobSummary":        llm.TruncateForPrompt(input.JobSummary, 1000),
		"Experience":        llm.TruncateForPrompt(input.Experience, 1000),
		"MatchingRequired":  joinSkills(input.MatchingRequired),
		"MissingRequired":   joinSkills(input.MissingRequired),
		"MatchingPreferred": joinSkills(input.MatchingPreferred),
		"MissingPreferred":  joinSkills(input.MissingPreferred),
		"AdditionalSkills":  joinSkills(input.AdditionalSkills),
		"RequiredMatchPct":  fmt.Sprintf("%.1f", input.RequiredMatchPct),
	})

	jsonResp, err := b.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}

	var response narrativeResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &response); err != nil {
		return nil, fmt.Errorf("failed to parse narrative response: %w (content: %s)", err, jsonResp)
	}

	return &types.Narrative{
		Score:            types.ClampScore(response.Score),
		Strengths:        response.Strengths,
		DevelopmentAreas: response.DevelopmentAreas,
		FocusAreas:       response.FocusAreas,
	}, nil
}

// EvaluateAnswer scores one answer via the LLM.
func (b *GeminiBackend) EvaluateAnswer(ctx context.Context, input EvaluationInput) (*types.Evaluation, error) {
	template := prompts.MustGet("evaluation.json", "answer-evaluation")
	prompt := prompts.Format(template, map[string]string{
		"Question":   input.Question.Text,
		"Rubric":     input.Question.Rubric,
		"Answer":     llm.TruncateForPrompt(input.AnswerText, 2000),
		"Experience": llm.TruncateForPrompt(input.Experience, 500),
		"JobSummary": llm.TruncateForPrompt(input.JobSummary, 500),
	})

	jsonResp, err := b.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	var response evaluationResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &response); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w (content: %s)", err, jsonResp)
	}

	return &types.Evaluation{
		QuestionID:   input.Question.ID,
		Score:        clampScore(response.Score),
		Feedback:     response.Feedback,
		Strengths:    response.Strengths,
		Improvements: response.Improvements,
	}, nil
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "none"
	}
	return strings.Join(skills, ", ")
}
