package session

import (
	"time"

	"github.com/jonathan/interview-coach/internal/types"
)

// Snapshot is the serializable full state of a session, used for persistence.
type Snapshot struct {
	ID          string                       `json:"id"`
	Status      types.SessionStatus          `json:"status"`
	Profile     *types.NormalizedProfile     `json:"profile,omitempty"`
	Requirement *types.NormalizedRequirement `json:"requirement,omitempty"`
	Report      *types.MatchReport           `json:"report,omitempty"`
	Plan        types.QuestionPlan           `json:"plan"`
	Questions   []types.Question             `json:"questions,omitempty"`
	Answers     map[string]types.Answer      `json:"answers,omitempty"`
	Evaluations map[string]types.Evaluation  `json:"evaluations,omitempty"`
	Notes       []types.Note                 `json:"notes,omitempty"`
	StartedAt   time.Time                    `json:"started_at"`
	EndedAt     *time.Time                   `json:"ended_at,omitempty"`
}

// Snapshot captures the session's current state for persistence.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:          s.id,
		Status:      s.status,
		Profile:     s.profile,
		Requirement: s.requirement,
		Report:      s.report,
		Plan:        s.plan,
		Questions:   append([]types.Question(nil), s.questions...),
		Answers:     make(map[string]types.Answer, len(s.answers)),
		Evaluations: make(map[string]types.Evaluation, len(s.evaluations)),
		Notes:       append([]types.Note(nil), s.notes...),
		StartedAt:   s.startedAt,
		EndedAt:     s.endedAt,
	}
	for id, a := range s.answers {
		snap.Answers[id] = a
	}
	for id, e := range s.evaluations {
		snap.Evaluations[id] = e
	}
	return snap
}

// Restore rebuilds a session from a snapshot, including terminal ones.
func Restore(snap Snapshot, opts ...Option) *Session {
	s := &Session{
		id:          snap.ID,
		profile:     snap.Profile,
		requirement: snap.Requirement,
		report:      snap.Report,
		plan:        snap.Plan,
		status:      snap.Status,
		questions:   append([]types.Question(nil), snap.Questions...),
		answers:     make(map[string]types.Answer, len(snap.Answers)),
		evaluations: make(map[string]types.Evaluation, len(snap.Evaluations)),
		notes:       append([]types.Note(nil), snap.Notes...),
		startedAt:   snap.StartedAt,
		endedAt:     snap.EndedAt,
		now:         time.Now,
	}
	for id, a := range snap.Answers {
		s.answers[id] = a
	}
	for id, e := range snap.Evaluations {
		s.evaluations[id] = e
	}
	if s.status == "" {
		s.status = types.StatusInProgress
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
