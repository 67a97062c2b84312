package vision

import "errors"

var (
	// ErrUnsupportedImage indicates an intake payload in a format the
	// checks cannot operate on.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrIncompleteExtraction indicates the extraction stages finished
	// without producing every field the downstream checks require. The
	// text doubles as the audit detail for the failed step.
	ErrIncompleteExtraction = errors.New("Vision extraction failed to produce all key fields.")
)
