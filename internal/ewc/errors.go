package ewc

import (
	"errors"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrNotFound         = errors.New("ewc code not found")
	ErrInvalidEntryType = errors.New("invalid entry type")
	ErrEmptyCatalog     = errors.New("ewc catalog is empty")
)

// MapHTTPStatus maps catalog domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidEntryType) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
