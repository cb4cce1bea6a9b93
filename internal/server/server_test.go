package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/engine"
	"github.com/jonathan/interview-coach/internal/match"
	"github.com/jonathan/interview-coach/internal/store"
	"github.com/jonathan/interview-coach/internal/types"
)

const testResume = `Jane Doe

## Experience
Built Go services backed by PostgreSQL.

## Skills
Go, PostgreSQL, Docker`

const testJob = `Backend Engineer

## Requirements
- Go and PostgreSQL
- Java a plus`

type fixedAssessment struct{}

func (fixedAssessment) Assess(context.Context, match.AssessmentInput) (*types.Narrative, error) {
	return &types.Narrative{Score: 7}, nil
}

func (fixedAssessment) EvaluateAnswer(_ context.Context, input match.EvaluationInput) (*types.Evaluation, error) {
	return &types.Evaluation{QuestionID: input.Question.ID, Score: 8, Feedback: "solid"}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	analyzer := match.NewAnalyzer(fixedAssessment{}, nil)
	eng := engine.New(analyzer, nil, nil, store.NewMemory(), nil, engine.Options{RandomSeed: 1})
	srv := New(Config{Port: 0}, eng, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func startSession(t *testing.T, ts *httptest.Server, total int) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/sessions", map[string]any{
		"resume_text":     testResume,
		"job_text":        testJob,
		"total_questions": total,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		SessionID string `json:"session_id"`
	}
	decode(t, resp, &result)
	require.NotEmpty(t, result.SessionID)
	return result.SessionID
}

func nextQuestion(t *testing.T, ts *httptest.Server, sessionID string) (*types.Question, bool) {
	t.Helper()
	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/next", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Question *types.Question `json:"question"`
		Done     bool            `json:"done"`
	}
	decode(t, resp, &result)
	return result.Question, result.Done
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestMatch(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/match", MatchRequest{ResumeText: testResume, JobText: testJob})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Report types.MatchReport `json:"report"`
	}
	decode(t, resp, &result)
	assert.Contains(t, result.Report.MatchingRequired, "go")
	assert.Contains(t, result.Report.MissingRequired, "java")
	assert.Equal(t, 7, result.Report.Narrative.Score)
}

func TestMatch_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/match", map[string]string{"resume_text": testResume})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInterviewFlow(t *testing.T) {
	ts := newTestServer(t)
	sessionID := startSession(t, ts, 3)

	q, done := nextQuestion(t, ts, sessionID)
	require.False(t, done)
	require.NotNil(t, q)
	assert.Equal(t, types.CategoryIceBreaker, q.Category)

	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/answers", AnswerRequest{
		QuestionID: q.ID,
		Text:       "I am a backend engineer.",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/sessions/"+sessionID+"/evaluations", EvaluationRequest{QuestionID: q.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var eval types.Evaluation
	decode(t, resp, &eval)
	assert.Equal(t, 8.0, eval.Score)

	resp = postJSON(t, ts.URL+"/sessions/"+sessionID+"/finish", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary types.SessionSummary
	decode(t, resp, &summary)
	assert.Equal(t, types.StatusCompleted, summary.Status)
	require.NotNil(t, summary.OverallScore)
	assert.InDelta(t, 8.0, *summary.OverallScore, 1e-9)
}

func TestNextQuestion_DoneWhenPlanExhausted(t *testing.T) {
	ts := newTestServer(t)
	sessionID := startSession(t, ts, 2)

	for i := 0; i < 2; i++ {
		q, done := nextQuestion(t, ts, sessionID)
		require.False(t, done)
		require.NotNil(t, q)
	}

	q, done := nextQuestion(t, ts, sessionID)
	assert.True(t, done)
	assert.Nil(t, q)
}

func TestAnswerUnknownQuestionIs404(t *testing.T) {
	ts := newTestServer(t)
	sessionID := startSession(t, ts, 2)

	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/answers", AnswerRequest{
		QuestionID: "ghost",
		Text:       "answer",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEvaluationWithoutAnswerIs409(t *testing.T) {
	ts := newTestServer(t)
	sessionID := startSession(t, ts, 2)

	q, _ := nextQuestion(t, ts, sessionID)
	require.NotNil(t, q)

	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/evaluations", EvaluationRequest{QuestionID: q.ID})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestMutatingClosedSessionIs409(t *testing.T) {
	ts := newTestServer(t)
	sessionID := startSession(t, ts, 2)

	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/cancel", CancelRequest{Reason: "no-show"})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/sessions/"+sessionID+"/finish", map[string]any{})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownSessionIs404(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/sessions/no-such-id/next", map[string]any{})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTranscriptAndExport(t *testing.T) {
	ts := newTestServer(t)
	sessionID := startSession(t, ts, 2)

	q, _ := nextQuestion(t, ts, sessionID)
	require.NotNil(t, q)
	resp := postJSON(t, ts.URL+"/sessions/"+sessionID+"/answers", AnswerRequest{QuestionID: q.ID, Text: "my answer"})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/sessions/" + sessionID + "/transcript")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Transcript []types.TranscriptEntry `json:"transcript"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Transcript, 2)

	resp, err = http.Get(ts.URL + "/sessions/" + sessionID + "/export?format=text")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	resp, err = http.Get(ts.URL + "/sessions/" + sessionID + "/export?format=xml")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListSessions(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 3; i++ {
		startSession(t, ts, 2)
	}

	resp, err := http.Get(ts.URL + "/sessions?limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Sessions []store.SessionRecord `json:"sessions"`
	}
	decode(t, resp, &body)
	assert.Len(t, body.Sessions, 2)

	resp, err = http.Get(ts.URL + "/sessions?limit=zero")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, fmt.Sprintf("%s/sessions", ts.URL), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
