package types

import "time"

// SessionStatus is the lifecycle state of an interview session.
type SessionStatus string

// Session lifecycle states. Completed and canceled are terminal.
const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCanceled   SessionStatus = "canceled"
)

// Terminal reports whether the status permits no further mutation.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Answer is a candidate's response to a question. At most one answer exists
// per question; a second submission replaces the first.
type Answer struct {
	QuestionID          string    `json:"question_id"`
	Text                string    `json:"text"`
	ResponseTimeSeconds *float64  `json:"response_time_seconds,omitempty"`
	RecordedAt          time.Time `json:"recorded_at"`
}

// Evaluation is the rubric-based scoring of one answer.
type Evaluation struct {
	QuestionID   string   `json:"question_id"`
	Score        float64  `json:"score"` // 0-10
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
}

// Note is an annotation attached to a session (observations, cancellation
// reasons).
type Note struct {
	Text string    `json:"text"`
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
}

// TranscriptEntry is one chronological event in a session transcript.
type TranscriptEntry struct {
	Kind       string    `json:"kind"` // "question" or "answer"
	QuestionID string    `json:"question_id"`
	Category   Category  `json:"category,omitempty"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// SessionSummary aggregates the outcome of a session.
type SessionSummary struct {
	SessionID          string           `json:"session_id"`
	Status             SessionStatus    `json:"status"`
	QuestionsAsked     int              `json:"questions_asked"`
	QuestionsByCat     map[Category]int `json:"questions_by_category"`
	Answered           int              `json:"answered"`
	Evaluated          int              `json:"evaluated"`
	AverageScore       float64          `json:"average_score"`
	TechnicalScore     float64          `json:"technical_score"`
	CommunicationScore float64          `json:"communication_score"`
	OverallScore       *float64         `json:"overall_score,omitempty"`
	StartedAt          time.Time        `json:"started_at"`
	EndedAt            *time.Time       `json:"ended_at,omitempty"`
	DurationSeconds    float64          `json:"duration_seconds"`
}
