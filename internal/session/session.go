// Package session implements the stateful interview orchestrator. A Session
// owns its question, answer and evaluation history and is the only writer of
// that state.
package session

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-coach/internal/types"
)

// Weighting of the two score groups in the overall score. Technical covers
// the technical and situational categories, communication everything else.
const (
	technicalWeight     = 0.7
	communicationWeight = 0.3
)

// Session is one interview attempt from first question to finalization or
// cancellation. All methods are safe for concurrent use.
//
// Sessions start in_progress immediately: the question plan is already built
// at creation time, so there is no separate created state to wait in.
type Session struct {
	mu sync.Mutex

	id          string
	profile     *types.NormalizedProfile
	requirement *types.NormalizedRequirement
	report      *types.MatchReport
	plan        types.QuestionPlan

	status      types.SessionStatus
	questions   []types.Question
	answers     map[string]types.Answer
	evaluations map[string]types.Evaluation
	notes       []types.Note

	startedAt time.Time
	endedAt   *time.Time
	now       func() time.Time
}

// Option configures a new Session.
type Option func(*Session)

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets an explicit session ID instead of a generated one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New starts an interview session with the given context and question plan.
func New(profile *types.NormalizedProfile, requirement *types.NormalizedRequirement, report *types.MatchReport, plan types.QuestionPlan, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		profile:     profile,
		requirement: requirement,
		report:      report,
		plan:        plan,
		status:      types.StatusInProgress,
		answers:     make(map[string]types.Answer),
		evaluations: make(map[string]types.Evaluation),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() types.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Plan returns the immutable question plan.
func (s *Session) Plan() types.QuestionPlan { return s.plan }

// Profile returns the candidate profile the session was started with.
func (s *Session) Profile() *types.NormalizedProfile { return s.profile }

// Requirement returns the job requirement the session was started with.
func (s *Session) Requirement() *types.NormalizedRequirement { return s.requirement }

// Report returns the match report the session was started with.
func (s *Session) Report() *types.MatchReport { return s.report }

// NextSlot returns the category of the next question the plan calls for. The
// second return is false when the plan is exhausted, which signals a complete
// interview, not an error. NextSlot does not advance the cursor; recording a
// question via AddQuestion does.
func (s *Session) NextSlot() (types.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return "", false
	}
	return s.slotAt(len(s.questions))
}

// CurrentStage returns the category the interview is currently in: the
// category of the next slot, or the last asked question's category once the
// plan is exhausted.
func (s *Session) CurrentStage() types.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.slotAt(len(s.questions)); ok {
		return c
	}
	if n := len(s.questions); n > 0 {
		return s.questions[n-1].Category
	}
	return ""
}

// slotAt maps a question ordinal onto the plan's category sequence.
// Caller holds the lock.
func (s *Session) slotAt(pos int) (types.Category, bool) {
	for _, e := range s.plan.Entries {
		if pos < e.Count {
			return e.Category, true
		}
		pos -= e.Count
	}
	return "", false
}

// AddQuestion appends an asked question to the history. Questions are
// append-only; a re-ask is a new Question with a new ID.
func (s *Session) AddQuestion(q types.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if q.AskedAt.IsZero() {
		q.AskedAt = s.now()
	}
	s.questions = append(s.questions, q)
	return nil
}

// Questions returns a copy of the asked-question history in ask order.
func (s *Session) Questions() []types.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// RecordAnswer stores the candidate's answer to a question. A second answer
// for the same question replaces the first, and any evaluation of the stale
// answer is removed rather than left dangling.
func (s *Session) RecordAnswer(questionID, text string, responseTimeSeconds *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.findQuestion(questionID) == nil {
		return &QuestionNotFoundError{QuestionID: questionID}
	}

	s.answers[questionID] = types.Answer{
		QuestionID:          questionID,
		Text:                text,
		ResponseTimeSeconds: responseTimeSeconds,
		RecordedAt:          s.now(),
	}
	delete(s.evaluations, questionID)
	return nil
}

// RecordEvaluation stores the scoring of an answered question. The question
// must have a recorded answer.
func (s *Session) RecordEvaluation(eval types.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.findQuestion(eval.QuestionID) == nil {
		return &QuestionNotFoundError{QuestionID: eval.QuestionID}
	}
	if _, answered := s.answers[eval.QuestionID]; !answered {
		return &NoAnswerError{QuestionID: eval.QuestionID}
	}
	s.evaluations[eval.QuestionID] = eval
	return nil
}

// Answer returns the recorded answer for a question, if any.
func (s *Session) Answer(questionID string) (types.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[questionID]
	return a, ok
}

// Evaluation returns the recorded evaluation for a question, if any.
func (s *Session) Evaluation(questionID string) (types.Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.evaluations[questionID]
	return e, ok
}

// AddNote attaches an annotation to the session. Notes are allowed on closed
// sessions so post-interview observations can still be recorded.
func (s *Session) AddNote(text, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, types.Note{Text: text, Kind: kind, At: s.now()})
}

// Notes returns a copy of the session's annotations.
func (s *Session) Notes() []types.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// End finalizes the session, freezing timestamps and computing the aggregate
// scores. Ending an already closed session is a SessionClosedError.
func (s *Session) End() (types.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return types.SessionSummary{}, err
	}
	s.status = types.StatusCompleted
	at := s.now()
	s.endedAt = &at
	return s.summary(), nil
}

// Cancel terminates the session early, recording the reason as a note.
func (s *Session) Cancel(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.status = types.StatusCanceled
	at := s.now()
	s.endedAt = &at
	if reason != "" {
		s.notes = append(s.notes, types.Note{Text: reason, Kind: "cancellation", At: at})
	}
	return nil
}

// Summary computes the session's aggregate metrics. It is valid on both open
// and closed sessions; open sessions report duration up to now.
func (s *Session) Summary() types.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary()
}

// summary computes aggregates. Caller holds the lock.
func (s *Session) summary() types.SessionSummary {
	byCat := make(map[types.Category]int)
	for _, q := range s.questions {
		byCat[q.Category]++
	}

	var all, technical, communication []float64
	for id, eval := range s.evaluations {
		all = append(all, eval.Score)
		q := s.findQuestion(id)
		if q != nil && q.Category.IsTechnical() {
			technical = append(technical, eval.Score)
		} else {
			communication = append(communication, eval.Score)
		}
	}

	summary := types.SessionSummary{
		SessionID:          s.id,
		Status:             s.status,
		QuestionsAsked:     len(s.questions),
		QuestionsByCat:     byCat,
		Answered:           len(s.answers),
		Evaluated:          len(s.evaluations),
		AverageScore:       mean(all),
		TechnicalScore:     mean(technical),
		CommunicationScore: mean(communication),
		StartedAt:          s.startedAt,
		EndedAt:            s.endedAt,
	}

	end := s.now()
	if s.endedAt != nil {
		end = *s.endedAt
	}
	summary.DurationSeconds = end.Sub(s.startedAt).Seconds()

	// Overall is the fixed technical/communication weighting when both
	// groups have scores; a single scored group stands on its own.
	switch {
	case len(technical) > 0 && len(communication) > 0:
		overall := technicalWeight*mean(technical) + communicationWeight*mean(communication)
		summary.OverallScore = &overall
	case len(technical) > 0:
		overall := mean(technical)
		summary.OverallScore = &overall
	case len(communication) > 0:
		overall := mean(communication)
		summary.OverallScore = &overall
	}
	return summary
}

// Transcript returns the session's questions and answers merged into one
// chronological view. Ties sort questions before answers.
func (s *Session) Transcript() []types.TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]types.TranscriptEntry, 0, len(s.questions)+len(s.answers))
	for _, q := range s.questions {
		entries = append(entries, types.TranscriptEntry{
			Kind:       "question",
			QuestionID: q.ID,
			Category:   q.Category,
			Text:       q.Text,
			Timestamp:  q.AskedAt,
		})
		if a, ok := s.answers[q.ID]; ok {
			entries = append(entries, types.TranscriptEntry{
				Kind:       "answer",
				QuestionID: a.QuestionID,
				Category:   q.Category,
				Text:       a.Text,
				Timestamp:  a.RecordedAt,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries
}

// Export formats. Export renders the full session record.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// exportRecord is the JSON export shape.
type exportRecord struct {
	SessionID  string                  `json:"session_id"`
	Status     types.SessionStatus     `json:"status"`
	Plan       types.QuestionPlan      `json:"plan"`
	Transcript []types.TranscriptEntry `json:"transcript"`
	Notes      []types.Note            `json:"notes,omitempty"`
	Summary    types.SessionSummary    `json:"summary"`
}

// Export renders the session transcript, notes and summary in the requested
// format ("json" or "text").
func (s *Session) Export(format string) ([]byte, error) {
	transcript := s.Transcript()
	summary := s.Summary()

	s.mu.Lock()
	notes := make([]types.Note, len(s.notes))
	copy(notes, s.notes)
	plan := s.plan
	status := s.status
	s.mu.Unlock()

	switch format {
	case FormatJSON:
		return json.MarshalIndent(exportRecord{
			SessionID:  s.id,
			Status:     status,
			Plan:       plan,
			Transcript: transcript,
			Notes:      notes,
			Summary:    summary,
		}, "", "  ")
	case FormatText:
		var b strings.Builder
		fmt.Fprintf(&b, "Interview session %s (%s)\n", s.id, status)
		fmt.Fprintf(&b, "Started: %s\n\n", summary.StartedAt.Format(time.RFC3339))
		for _, e := range transcript {
			label := "Q"
			if e.Kind == "answer" {
				label = "A"
			}
			fmt.Fprintf(&b, "[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), label, e.Text)
		}
		for _, n := range notes {
			fmt.Fprintf(&b, "\nNote (%s): %s\n", n.Kind, n.Text)
		}
		fmt.Fprintf(&b, "\nQuestions asked: %d, answered: %d, evaluated: %d\n",
			summary.QuestionsAsked, summary.Answered, summary.Evaluated)
		if summary.OverallScore != nil {
			fmt.Fprintf(&b, "Overall score: %.1f (technical %.1f, communication %.1f)\n",
				*summary.OverallScore, summary.TechnicalScore, summary.CommunicationScore)
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// checkOpen returns a SessionClosedError if the session is terminal.
// Caller holds the lock.
func (s *Session) checkOpen() error {
	if s.status.Terminal() {
		return &SessionClosedError{ID: s.id, Status: string(s.status)}
	}
	return nil
}

// findQuestion looks up an asked question by ID. Caller holds the lock.
func (s *Session) findQuestion(id string) *types.Question {
	for i := range s.questions {
		if s.questions[i].ID == id {
			return &s.questions[i]
		}
	}
	return nil
}

func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores))
}
