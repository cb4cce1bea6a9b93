package server

import (
	"net/http"

	"github.com/jonathan/interview-coach/internal/normalize"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/store"
)

// HTTPStatus maps domain errors onto HTTP status codes.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *store.NotFoundError, *session.QuestionNotFoundError:
		return http.StatusNotFound
	case *session.SessionClosedError, *session.NoAnswerError:
		return http.StatusConflict
	case *normalize.EmptyInputError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
