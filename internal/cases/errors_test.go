package cases

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"not processed", ErrNotProcessed, http.StatusConflict},
		{"file too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", ErrInvalidFile, http.StatusBadRequest},
		{"unsupported type", ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{"multi page pdf", ErrMultiPagePDF, http.StatusBadRequest},
		{"wrapped invalid file", fmt.Errorf("%w: unreadable PDF", ErrInvalidFile), http.StatusBadRequest},
		{"wrapped multi page", fmt.Errorf("%w: got 3 pages", ErrMultiPagePDF), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
