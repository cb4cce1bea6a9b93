package session

import "fmt"

// SessionClosedError indicates a mutating operation was attempted on a
// session that has already completed or been canceled.
type SessionClosedError struct {
	ID     string
	Status string
}

func (e *SessionClosedError) Error() string {
	return fmt.Sprintf("session %s is closed (status %s)", e.ID, e.Status)
}

// QuestionNotFoundError indicates the referenced question was never asked in
// this session.
type QuestionNotFoundError struct {
	QuestionID string
}

func (e *QuestionNotFoundError) Error() string {
	return fmt.Sprintf("question %s not found in session", e.QuestionID)
}

// NoAnswerError indicates an evaluation was submitted for a question that has
// no recorded answer.
type NoAnswerError struct {
	QuestionID string
}

func (e *NoAnswerError) Error() string {
	return fmt.Sprintf("question %s has no recorded answer to evaluate", e.QuestionID)
}
