package cases

import (
	"errors"
	"net/http"
)

// Domain errors for case operations.
var (
	ErrNotFound        = errors.New("case not found")
	ErrDuplicate       = errors.New("case already exists")
	ErrNotProcessed    = errors.New("case has not been processed")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidFile     = errors.New("invalid file")
	ErrUnsupportedType = errors.New("unsupported cheque format")
	ErrMultiPagePDF    = errors.New("cheque PDF must contain a single page")
)

// MapHTTPStatus maps case domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotProcessed) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnsupportedType) {
		return http.StatusUnsupportedMediaType
	}
	if errors.Is(err, ErrMultiPagePDF) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
