package audit

import "context"

// Formatter produces the narrative summary for a completed trail.
// Implementations typically delegate to a language model.
type Formatter interface {
	Summarize(ctx context.Context, record Record) (string, error)
}

const (
	emptySummary  = "No processing steps were logged."
	failedSummary = "Summary generation failed."
)

// Summarize renders the trail's narrative summary through the formatter.
// An empty trail or a formatter failure yields a fixed placeholder; the
// error is logged, never returned.
func (t *Trail) Summarize(ctx context.Context, f Formatter) string {
	if len(t.steps) == 0 {
		return emptySummary
	}

	summary, err := f.Summarize(ctx, t.Record())
	if err != nil {
		t.logger.Warn("summary generation failed", "error", err)
		return failedSummary
	}

	return summary
}
