package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// retrievedContextLimit caps how much retrieved text is stuffed into a prompt.
const retrievedContextLimit = 2000

// GeminiBackend implements Backend on top of the llm client, using the
// per-category prompt templates in questions.json.
type GeminiBackend struct {
	client llm.Client
}

// NewGeminiBackend creates a question backend backed by an LLM client.
func NewGeminiBackend(client llm.Client) *GeminiBackend {
	return &GeminiBackend{client: client}
}

// questionsResponse is the expected JSON shape for generated questions.
type questionsResponse struct {
	Questions []struct {
		Question  string   `json:"question"`
		FollowUps []string `json:"follow_ups"`
		Rubric    string   `json:"rubric"`
		SkillTag  string   `json:"skill_tag"`
	} `json:"questions"`
}

// GenerateQuestions builds the category prompt and parses the model's
// structured response into drafts.
func (b *GeminiBackend) GenerateQuestions(ctx context.Context, category types.Category, inputs Inputs, previous []string, count int) ([]Draft, error) {
	template, err := prompts.Get("questions.json", string(category))
	if err != nil {
		return nil, fmt.Errorf("no prompt for category %s: %w", category, err)
	}
	prompt := prompts.Format(template, b.promptData(inputs, previous, count))

	jsonResp, err := b.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var response questionsResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &response); err != nil {
		return nil, fmt.Errorf("failed to parse questions response: %w (content: %s)", err, jsonResp)
	}

	drafts := make([]Draft, 0, len(response.Questions))
	for _, q := range response.Questions {
		drafts = append(drafts, Draft{
			Text:      q.Question,
			FollowUps: q.FollowUps,
			Rubric:    q.Rubric,
			SkillTag:  q.SkillTag,
		})
	}
	return drafts, nil
}

// promptData flattens the session context into the placeholder map shared by
// all category templates. Templates only use the keys they declare.
func (b *GeminiBackend) promptData(inputs Inputs, previous []string, count int) map[string]string {
	data := map[string]string{
		"Count":             strconv.Itoa(count),
		"PreviousQuestions": joinOrNone(previous),
		"RetrievedContext":  llm.TruncateForPrompt(retrievedText(inputs.Retrieved), retrievedContextLimit),
	}
	if req := inputs.Requirement; req != nil {
		data["JobTitle"] = req.Title
		data["JobSummary"] = llm.TruncateForPrompt(req.Summary, 1000)
		data["RequiredSkills"] = joinOrNone(req.RequiredSkills)
		data["PreferredSkills"] = joinOrNone(req.PreferredSkills)
		data["Responsibilities"] = joinOrNone(req.Responsibilities)
	}
	if p := inputs.Profile; p != nil {
		data["CandidateSkills"] = joinOrNone(p.Skills)
		data["Experience"] = llm.TruncateForPrompt(p.Sections["experience"], 1000)
	}
	if r := inputs.Report; r != nil {
		data["MatchingRequired"] = joinOrNone(r.MatchingRequired)
		data["MissingRequired"] = joinOrNone(r.MissingRequired)
		data["Strengths"] = joinOrNone(r.Narrative.Strengths)
		data["DevelopmentAreas"] = joinOrNone(r.Narrative.DevelopmentAreas)
		data["FocusAreas"] = joinOrNone(r.Narrative.FocusAreas)
	}
	return data
}

func retrievedText(docs []types.RetrievedDocument) string {
	if len(docs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n---\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, "; ")
}
