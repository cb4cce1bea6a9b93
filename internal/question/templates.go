package question

import "github.com/jonathan/interview-coach/internal/types"

// bankEntry is one offline question in the fallback template bank.
type bankEntry struct {
	Text      string
	FollowUps []string
	Rubric    string
	SkillTag  string
}

// templateBanks is the per-category offline question bank. It keeps the
// interview functional when no generative backend is configured or a
// backend call fails.
var templateBanks = map[types.Category][]bankEntry{
	types.CategoryIceBreaker: {
		{
			Text:      "Tell me about yourself.",
			FollowUps: []string{"What accomplishment are you most proud of?"},
			Rubric:    "A clear, concise narrative connecting past experience to this role.",
		},
		{
			Text:      "How did you hear about this position?",
			Rubric:    "Shows genuine interest in the role rather than a scattershot search.",
		},
		{
			Text:      "Why are you interested in working for our company?",
			FollowUps: []string{"What do you know about what we do?"},
			Rubric:    "Evidence of research into the company and a motivation that fits the role.",
		},
		{
			Text:      "What are you looking for in your next role?",
			Rubric:    "Realistic expectations that align with what this position offers.",
		},
		{
			Text:      "What are your strengths and weaknesses?",
			FollowUps: []string{"How are you working on that weakness?"},
			Rubric:    "Honest self-assessment with concrete examples, not rehearsed cliches.",
		},
	},
	types.CategoryBehavioral: {
		{
			Text:      "Tell me about a challenging project you worked on.",
			FollowUps: []string{"What was your specific contribution?", "What would you do differently?"},
			Rubric:    "STAR-structured answer with a measurable outcome and personal ownership.",
		},
		{
			Text:      "Describe a situation where you had to work under pressure.",
			FollowUps: []string{"How did you prioritize?"},
			Rubric:    "Concrete coping strategies and a delivered result despite the pressure.",
		},
		{
			Text:      "How do you handle conflicts with team members?",
			FollowUps: []string{"Give me a specific example."},
			Rubric:    "Direct but respectful conflict resolution with a real example.",
		},
		{
			Text:      "Tell me about a time you failed and what you learned from it.",
			Rubric:    "Accountability for the failure plus a specific behavioral change afterward.",
		},
		{
			Text:      "Describe your leadership style with an example.",
			FollowUps: []string{"How do you adapt it to different people?"},
			Rubric:    "A self-aware style description backed by a situation where it worked.",
		},
	},
	types.CategoryTechnical: {
		{
			Text:      "What programming languages are you most comfortable with?",
			FollowUps: []string{"What do you like and dislike about your primary language?"},
			Rubric:    "Depth in at least one language, including its tradeoffs and tooling.",
			SkillTag:  "programming",
		},
		{
			Text:      "Describe your experience with databases.",
			FollowUps: []string{"How do you decide between relational and non-relational storage?"},
			Rubric:    "Hands-on schema design, query tuning, and a reasoned storage choice.",
			SkillTag:  "databases",
		},
		{
			Text:      "How do you approach testing your code?",
			FollowUps: []string{"Where do you draw the line between unit and integration tests?"},
			Rubric:    "A concrete testing strategy, not just 'I write tests'.",
			SkillTag:  "testing",
		},
		{
			Text:      "Explain your development workflow, from ticket to production.",
			Rubric:    "Familiarity with code review, CI, and deployment practices.",
			SkillTag:  "workflow",
		},
		{
			Text:      "How do you keep up with industry trends and new technologies?",
			Rubric:    "Specific sources and a recent example of applying something new.",
		},
	},
	types.CategorySituational: {
		{
			Text:      "You discover a production incident an hour before an important demo. Walk me through what you do.",
			FollowUps: []string{"Who do you communicate with, and when?"},
			Rubric:    "Triage before blame, clear communication, and a pragmatic mitigation.",
		},
		{
			Text:      "A stakeholder asks for a feature you believe is a bad idea. How do you respond?",
			FollowUps: []string{"What if they insist after hearing your concerns?"},
			Rubric:    "Pushes back with data while staying collaborative, and commits once decided.",
		},
		{
			Text:      "You inherit a codebase with no tests and a deadline in two weeks. What is your plan?",
			Rubric:    "Risk-based prioritization rather than a rewrite or blind feature work.",
		},
		{
			Text:      "Two teammates disagree on a technical approach and the decision blocks the team. What do you do?",
			Rubric:    "Drives a timeboxed decision using objective criteria, not seniority.",
		},
		{
			Text:      "Halfway through a project, requirements change significantly. How do you handle it?",
			FollowUps: []string{"How do you communicate the impact on the timeline?"},
			Rubric:    "Re-scopes transparently and renegotiates commitments early.",
		},
	},
	types.CategoryCulture: {
		{
			Text:      "What kind of work environment helps you do your best work?",
			Rubric:    "Self-knowledge about working style and honesty about fit.",
		},
		{
			Text:      "How do you prefer to receive feedback?",
			FollowUps: []string{"Tell me about feedback that changed how you work."},
			Rubric:    "Openness to direct feedback and evidence of acting on it.",
		},
		{
			Text:      "Describe the best team you have been part of. What made it work?",
			Rubric:    "Values collaboration factors the candidate can help recreate.",
		},
		{
			Text:      "How do you balance individual deep work with team collaboration?",
			Rubric:    "A deliberate approach to protecting focus without siloing.",
		},
		{
			Text:      "What would make you turn down an otherwise great offer?",
			Rubric:    "Clear personal values and whether they are compatible with the role.",
		},
	},
}
