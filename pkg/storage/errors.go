package storage

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound reports a key with no blob behind it.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey reports an empty storage key.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey reports a key carrying a path traversal segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
)

// MapHTTPStatus picks the response status for a storage error.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
