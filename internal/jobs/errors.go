package jobs

import (
	"errors"
	"net/http"
)

// Domain errors for job operations.
var (
	ErrNotFound          = errors.New("job not found")
	ErrInvalidID         = errors.New("invalid job id")
	ErrEmptyFile         = errors.New("uploaded file is empty")
	ErrInvalidFile       = errors.New("uploaded file is not a valid PDF")
	ErrFileTooLarge      = errors.New("uploaded file exceeds the size limit")
	ErrInvalidStatus     = errors.New("status must be created, processing, done, or error")
	ErrInvalidTransition = errors.New("job state does not permit this operation")
	ErrInputUnavailable  = errors.New("job input document is no longer available")
)

// MapHTTPStatus maps job domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
