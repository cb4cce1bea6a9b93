// Package engine wires normalization, matching, retrieval, planning and
// question generation into the interview workflow the server and CLI expose.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/index"
	"github.com/jonathan/interview-coach/internal/match"
	"github.com/jonathan/interview-coach/internal/normalize"
	"github.com/jonathan/interview-coach/internal/plan"
	"github.com/jonathan/interview-coach/internal/question"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/store"
	"github.com/jonathan/interview-coach/internal/types"
)

// retrievalTopK is how many context snippets are pulled from the knowledge
// base per generated question.
const retrievalTopK = 3

// Options configures engine defaults applied when a start request leaves
// them unset.
type Options struct {
	TotalQuestions    int
	TechnicalFocusPct int
	RandomSeed        int64
}

// Engine orchestrates the interview workflow. Sessions live in memory and
// are written through to the store after every mutation.
type Engine struct {
	analyzer  *match.Analyzer
	qBackend  question.Backend
	embedder  index.Provider
	store     store.Store
	logger    *zap.Logger
	opts      Options
	now       func() time.Time

	mu     sync.Mutex
	active map[string]*liveSession
}

// liveSession pairs a session with its per-session collaborators: the
// question generator tracking asked texts and the knowledge-base index.
type liveSession struct {
	session   *session.Session
	generator *question.Generator
	kb        *index.Index
}

// New creates an Engine. qBackend and embedder may be nil; the engine then
// runs entirely on the template bank without retrieval context.
func New(analyzer *match.Analyzer, qBackend question.Backend, embedder index.Provider, st store.Store, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if st == nil {
		st = store.NewMemory()
	}
	if opts.TotalQuestions < 1 {
		opts.TotalQuestions = 10
	}
	if opts.TechnicalFocusPct <= 0 || opts.TechnicalFocusPct > 100 {
		opts.TechnicalFocusPct = 70
	}
	return &Engine{
		analyzer: analyzer,
		qBackend: qBackend,
		embedder: embedder,
		store:    st,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		active:   make(map[string]*liveSession),
	}
}

// MatchResult bundles the normalized inputs with their match report.
type MatchResult struct {
	Profile     *types.NormalizedProfile     `json:"profile"`
	Requirement *types.NormalizedRequirement `json:"requirement"`
	Report      *types.MatchReport           `json:"report"`
}

// BuildMatchReport normalizes the resume and job description and computes
// their match report.
func (e *Engine) BuildMatchReport(ctx context.Context, resumeText, jobText string) (*MatchResult, error) {
	profile, err := normalize.ResumeStrict(resumeText)
	if err != nil {
		return nil, err
	}
	requirement, err := normalize.JobDescriptionStrict(jobText)
	if err != nil {
		return nil, err
	}
	report := e.analyzer.Analyze(ctx, profile, requirement)
	return &MatchResult{Profile: profile, Requirement: requirement, Report: report}, nil
}

// StartRequest configures a new interview session. Zero values fall back to
// the engine defaults; DurationMinutes, when set, derives TotalQuestions.
type StartRequest struct {
	ResumeText        string
	JobText           string
	TotalQuestions    int
	TechnicalFocusPct int
	DurationMinutes   int
}

// StartResult describes a freshly started session.
type StartResult struct {
	SessionID string             `json:"session_id"`
	Plan      types.QuestionPlan `json:"plan"`
	Report    *types.MatchReport `json:"report"`
}

// StartSession normalizes the inputs, computes the match report, builds the
// question plan and seeds the session's knowledge base from the resume
// sections and job posting.
func (e *Engine) StartSession(ctx context.Context, req StartRequest) (*StartResult, error) {
	result, err := e.BuildMatchReport(ctx, req.ResumeText, req.JobText)
	if err != nil {
		return nil, err
	}

	total := req.TotalQuestions
	if req.DurationMinutes > 0 {
		total = plan.QuestionsForDuration(req.DurationMinutes)
	}
	if total < 1 {
		total = e.opts.TotalQuestions
	}
	focus := req.TechnicalFocusPct
	if focus <= 0 || focus > 100 {
		focus = e.opts.TechnicalFocusPct
	}
	questionPlan := plan.Build(total, focus)

	sess := session.New(result.Profile, result.Requirement, result.Report, questionPlan, session.WithClock(e.now))
	live := &liveSession{
		session:   sess,
		generator: question.New(e.qBackend, e.newRand(), e.logger.Named("question")),
	}
	if e.embedder != nil {
		live.kb = index.New(e.embedder)
		e.seedKnowledgeBase(ctx, live.kb, result.Profile, result.Requirement)
	}

	e.mu.Lock()
	e.active[sess.ID()] = live
	e.mu.Unlock()

	e.persist(ctx, sess)
	e.logger.Info("session started",
		zap.String("session_id", sess.ID()),
		zap.String("job_title", result.Requirement.Title),
		zap.Int("total_questions", questionPlan.Total()))

	return &StartResult{SessionID: sess.ID(), Plan: questionPlan, Report: result.Report}, nil
}

// seedKnowledgeBase indexes the resume sections, job summary and
// responsibilities so question generation can retrieve grounded context.
// Indexing failures degrade retrieval but never block the session.
func (e *Engine) seedKnowledgeBase(ctx context.Context, kb *index.Index, profile *types.NormalizedProfile, requirement *types.NormalizedRequirement) {
	add := func(id, content string, meta map[string]any) {
		if content == "" {
			return
		}
		if err := kb.Add(ctx, id, content, meta); err != nil {
			e.logger.Warn("failed to index document", zap.String("doc_id", id), zap.Error(err))
		}
	}

	if profile != nil {
		for name, text := range profile.Sections {
			add("resume:"+name, text, map[string]any{"source": "resume", "section": name})
		}
	}
	if requirement != nil {
		add("job:summary", requirement.Summary, map[string]any{"source": "job"})
		for i, r := range requirement.Responsibilities {
			add(fmt.Sprintf("job:responsibility:%d", i), r, map[string]any{"source": "job"})
		}
	}
}

// NextQuestion produces the next planned question for the session. A nil
// question with a nil error means the plan is exhausted and the interview is
// complete.
func (e *Engine) NextQuestion(ctx context.Context, sessionID string) (*types.Question, error) {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	category, ok := live.session.NextSlot()
	if !ok {
		if live.session.Status().Terminal() {
			return nil, &session.SessionClosedError{ID: sessionID, Status: string(live.session.Status())}
		}
		return nil, nil
	}

	inputs := question.Inputs{
		Profile:     live.session.Profile(),
		Requirement: live.session.Requirement(),
		Report:      live.session.Report(),
		Retrieved:   e.retrieve(ctx, live, category),
	}
	questions := live.generator.Generate(ctx, category, inputs, 1)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no question available for category %s", category)
	}

	q := questions[0]
	if err := live.session.AddQuestion(q); err != nil {
		return nil, err
	}
	e.persist(ctx, live.session)
	return &q, nil
}

// retrieve pulls context snippets for the category from the session's
// knowledge base. Retrieval failures are logged and treated as no context.
func (e *Engine) retrieve(ctx context.Context, live *liveSession, category types.Category) []types.RetrievedDocument {
	if live.kb == nil {
		return nil
	}
	query := string(category) + " interview question"
	if req := live.session.Requirement(); req != nil && req.Title != "" {
		query = req.Title + " " + query
	}
	docs, err := live.kb.Retrieve(ctx, query, retrievalTopK)
	if err != nil {
		e.logger.Warn("knowledge base retrieval failed",
			zap.String("session_id", live.session.ID()),
			zap.Error(err))
		return nil
	}
	return docs
}

// SubmitAnswer records the candidate's answer to a question.
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID, questionID, text string, responseTimeSeconds *float64) error {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := live.session.RecordAnswer(questionID, text, responseTimeSeconds); err != nil {
		return err
	}
	e.persist(ctx, live.session)
	return nil
}

// SubmitEvaluation scores the recorded answer for a question using the
// assessment backend (with its neutral fallback) and stores the result.
func (e *Engine) SubmitEvaluation(ctx context.Context, sessionID, questionID string) (types.Evaluation, error) {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return types.Evaluation{}, err
	}

	var q *types.Question
	for _, candidate := range live.session.Questions() {
		if candidate.ID == questionID {
			qq := candidate
			q = &qq
			break
		}
	}
	if q == nil {
		return types.Evaluation{}, &session.QuestionNotFoundError{QuestionID: questionID}
	}
	answer, ok := live.session.Answer(questionID)
	if !ok {
		return types.Evaluation{}, &session.NoAnswerError{QuestionID: questionID}
	}

	input := match.EvaluationInput{Question: *q, AnswerText: answer.Text}
	if req := live.session.Requirement(); req != nil {
		input.JobSummary = req.Summary
	}
	if p := live.session.Profile(); p != nil {
		input.Experience = p.Sections["experience"]
	}
	eval := e.analyzer.EvaluateAnswer(ctx, input)

	if err := live.session.RecordEvaluation(eval); err != nil {
		return types.Evaluation{}, err
	}
	e.persist(ctx, live.session)
	return eval, nil
}

// FinishSession completes the session and returns its final summary.
func (e *Engine) FinishSession(ctx context.Context, sessionID string) (types.SessionSummary, error) {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return types.SessionSummary{}, err
	}
	summary, err := live.session.End()
	if err != nil {
		return types.SessionSummary{}, err
	}
	e.persist(ctx, live.session)
	e.logger.Info("session completed",
		zap.String("session_id", sessionID),
		zap.Int("questions_asked", summary.QuestionsAsked))
	return summary, nil
}

// CancelSession terminates the session early.
func (e *Engine) CancelSession(ctx context.Context, sessionID, reason string) error {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := live.session.Cancel(reason); err != nil {
		return err
	}
	e.persist(ctx, live.session)
	e.logger.Info("session canceled",
		zap.String("session_id", sessionID),
		zap.String("reason", reason))
	return nil
}

// Summary returns the session's current aggregate metrics.
func (e *Engine) Summary(ctx context.Context, sessionID string) (types.SessionSummary, error) {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return types.SessionSummary{}, err
	}
	return live.session.Summary(), nil
}

// Transcript returns the session's chronological question and answer view.
func (e *Engine) Transcript(ctx context.Context, sessionID string) ([]types.TranscriptEntry, error) {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return live.session.Transcript(), nil
}

// Export renders the full session record in the requested format.
func (e *Engine) Export(ctx context.Context, sessionID, format string) ([]byte, error) {
	live, err := e.getLive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return live.session.Export(format)
}

// ListSessions returns recent sessions from the store, newest first.
func (e *Engine) ListSessions(ctx context.Context, limit int) ([]store.SessionRecord, error) {
	return e.store.ListSessions(ctx, limit)
}

// getLive resolves a session, reviving it from the store if this process has
// not seen it yet. Revived sessions get a fresh generator and knowledge base.
func (e *Engine) getLive(ctx context.Context, sessionID string) (*liveSession, error) {
	e.mu.Lock()
	live, ok := e.active[sessionID]
	e.mu.Unlock()
	if ok {
		return live, nil
	}

	snap, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess := session.Restore(snap, session.WithClock(e.now))
	live = &liveSession{
		session:   sess,
		generator: question.New(e.qBackend, e.newRand(), e.logger.Named("question")),
	}
	if e.embedder != nil {
		live.kb = index.New(e.embedder)
		e.seedKnowledgeBase(ctx, live.kb, sess.Profile(), sess.Requirement())
	}

	e.mu.Lock()
	e.active[sessionID] = live
	e.mu.Unlock()
	return live, nil
}

// persist writes the session through to the store. Persistence failures are
// logged, not fatal: the in-memory session stays authoritative.
func (e *Engine) persist(ctx context.Context, sess *session.Session) {
	if err := e.store.SaveSession(ctx, sess.Snapshot()); err != nil {
		e.logger.Warn("failed to persist session",
			zap.String("session_id", sess.ID()),
			zap.Error(err))
	}
}

func (e *Engine) newRand() *rand.Rand {
	seed := e.opts.RandomSeed
	if seed == 0 {
		seed = e.now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
