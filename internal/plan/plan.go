// Package plan allocates a session's question budget across interview
// categories and derives budgets from interview duration.
package plan

import (
	"github.com/jonathan/interview-coach/internal/types"
)

const (
	// iceBreakerCount is the fixed number of warm-up questions at the
	// start of every interview, clamped to the total budget.
	iceBreakerCount = 2

	// minutesPerQuestion is the pacing assumption used when deriving a
	// question budget from an interview duration.
	minutesPerQuestion = 2.5

	// minQuestions is the floor for duration-derived budgets.
	minQuestions = 5
)

// Build computes the per-category question allocation for one session.
// It is a pure function of its inputs. totalQuestions below 1 is clamped
// to 1 and technicalFocusPct is clamped into [0,100]; neither is an error.
//
// The fixed ice-breaker count comes off the top, the remainder is split
// between technical and behavioral proportionally to the focus
// percentage using integer division, and the culture category absorbs
// whatever the truncation leaves over. The counts always sum to exactly
// totalQuestions.
func Build(totalQuestions, technicalFocusPct int) types.QuestionPlan {
	if totalQuestions < 1 {
		totalQuestions = 1
	}
	if technicalFocusPct < 0 {
		technicalFocusPct = 0
	}
	if technicalFocusPct > 100 {
		technicalFocusPct = 100
	}

	ice := iceBreakerCount
	if ice > totalQuestions {
		ice = totalQuestions
	}
	rem := totalQuestions - ice

	technical := rem * technicalFocusPct / 100
	behavioral := rem * (100 - technicalFocusPct) / 100
	culture := rem - technical - behavioral

	counts := map[types.Category]int{
		types.CategoryIceBreaker: ice,
		types.CategoryTechnical:  technical,
		types.CategoryBehavioral: behavioral,
		types.CategoryCulture:    culture,
	}

	var entries []types.PlanEntry
	for _, c := range types.CategoryOrder {
		if n := counts[c]; n > 0 {
			entries = append(entries, types.PlanEntry{Category: c, Count: n})
		}
	}
	return types.QuestionPlan{Entries: entries}
}

// QuestionsForDuration converts an interview length in minutes into a
// question budget, assuming one question per two and a half minutes with
// a floor of five questions.
func QuestionsForDuration(minutes int) int {
	n := int(float64(minutes) / minutesPerQuestion)
	if n < minQuestions {
		return minQuestions
	}
	return n
}
