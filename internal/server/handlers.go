package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jonathan/interview-coach/internal/engine"
	"github.com/jonathan/interview-coach/internal/session"
)

// MatchRequest is the request body for POST /match.
type MatchRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JobText    string `json:"job_text" validate:"required"`
}

// StartSessionRequest is the request body for POST /sessions.
type StartSessionRequest struct {
	ResumeText        string `json:"resume_text" validate:"required"`
	JobText           string `json:"job_text" validate:"required"`
	TotalQuestions    int    `json:"total_questions,omitempty" validate:"gte=0"`
	TechnicalFocusPct int    `json:"technical_focus_pct,omitempty" validate:"gte=0,lte=100"`
	DurationMinutes   int    `json:"duration_minutes,omitempty" validate:"gte=0"`
}

// AnswerRequest is the request body for POST /sessions/{id}/answers.
type AnswerRequest struct {
	QuestionID          string   `json:"question_id" validate:"required"`
	Text                string   `json:"text" validate:"required"`
	ResponseTimeSeconds *float64 `json:"response_time_seconds,omitempty"`
}

// EvaluationRequest is the request body for POST /sessions/{id}/evaluations.
type EvaluationRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
}

// CancelRequest is the request body for POST /sessions/{id}/cancel.
type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// decodeAndValidate parses the JSON body into dst and runs struct validation.
// A false return means the error response has already been written.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

// handleMatch computes a match report without starting a session.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.engine.BuildMatchReport(r.Context(), req.ResumeText, req.JobText)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleStartSession starts an interview session.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.engine.StartSession(r.Context(), engine.StartRequest{
		ResumeText:        req.ResumeText,
		JobText:           req.JobText,
		TotalQuestions:    req.TotalQuestions,
		TechnicalFocusPct: req.TechnicalFocusPct,
		DurationMinutes:   req.DurationMinutes,
	})
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, result)
}

// handleListSessions lists recent sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.engine.ListSessions(r.Context(), limit)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"sessions": records})
}

// handleNextQuestion advances the session to its next planned question. An
// exhausted plan returns 200 with a null question and done=true.
func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.engine.NextQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"question": q,
		"done":     q == nil,
	})
}

// handleSubmitAnswer records an answer.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	err := s.engine.SubmitAnswer(r.Context(), r.PathValue("id"), req.QuestionID, req.Text, req.ResponseTimeSeconds)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// handleSubmitEvaluation scores a recorded answer.
func (s *Server) handleSubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	var req EvaluationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	eval, err := s.engine.SubmitEvaluation(r.Context(), r.PathValue("id"), req.QuestionID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}

// handleFinishSession completes the session and returns the final summary.
func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.FinishSession(r.Context(), r.PathValue("id"))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleCancelSession cancels the session.
func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	if err := s.engine.CancelSession(r.Context(), r.PathValue("id"), req.Reason); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "canceled"})
}

// handleSummary returns the session's current aggregate metrics.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleTranscript returns the chronological question and answer view.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	transcript, err := s.engine.Transcript(r.Context(), r.PathValue("id"))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"transcript": transcript})
}

// handleExport renders the full session record. The format query parameter
// selects json (default) or text.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = session.FormatJSON
	}
	if format != session.FormatJSON && format != session.FormatText {
		s.errorResponse(w, http.StatusBadRequest, "format must be json or text")
		return
	}

	data, err := s.engine.Export(r.Context(), r.PathValue("id"), format)
	if err != nil {
		s.domainError(w, err)
		return
	}

	contentType := "application/json"
	if format == session.FormatText {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
