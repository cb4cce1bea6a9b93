package types

import "time"

// Category identifies the kind of interview question.
type Category string

// Question categories, in the fixed stage order used by the planner.
const (
	CategoryIceBreaker  Category = "ice_breaker"
	CategoryTechnical   Category = "technical"
	CategoryBehavioral  Category = "behavioral"
	CategorySituational Category = "situational"
	CategoryCulture     Category = "culture"
)

// CategoryOrder is the stable iteration order for plan allocation and stage
// sequencing. The last category absorbs any rounding remainder.
var CategoryOrder = []Category{
	CategoryIceBreaker,
	CategoryTechnical,
	CategoryBehavioral,
	CategorySituational,
	CategoryCulture,
}

// IsTechnical reports whether a category counts toward the technical side of
// the session's weighted overall score. Everything else is scored as
// communication.
func (c Category) IsTechnical() bool {
	return c == CategoryTechnical || c == CategorySituational
}

// QuestionSource distinguishes degraded-but-functional template fallback
// questions from backend-generated ones.
type QuestionSource string

// Question sources.
const (
	SourceTemplate  QuestionSource = "template"
	SourceGenerated QuestionSource = "generated"
)

// QuestionPlan is the precomputed allocation of question counts per category
// for one interview session. It is immutable for the session's lifetime.
type QuestionPlan struct {
	Entries []PlanEntry `json:"entries"`
}

// PlanEntry allocates a question count to a single category.
type PlanEntry struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Total returns the sum of per-category counts.
func (p QuestionPlan) Total() int {
	total := 0
	for _, e := range p.Entries {
		total += e.Count
	}
	return total
}

// Count returns the allocation for a category (0 if absent).
func (p QuestionPlan) Count(c Category) int {
	for _, e := range p.Entries {
		if e.Category == c {
			return e.Count
		}
	}
	return 0
}

// Question is a single interview question. Questions are append-only: a
// re-ask produces a new Question with a new ID.
type Question struct {
	ID        string         `json:"id"`
	Category  Category       `json:"category"`
	Text      string         `json:"text"`
	FollowUps []string       `json:"follow_ups,omitempty"`
	Rubric    string         `json:"rubric,omitempty"`
	SkillTag  string         `json:"skill_tag,omitempty"`
	Source    QuestionSource `json:"source"`
	AskedAt   time.Time      `json:"asked_at"`
}
