package workflow

import (
	"context"

	"github.com/counterfoil/teller/internal/audit"
)

// runStart opens the trail for the run.
func runStart(_ context.Context, _ *Runtime, c *Case) error {
	c.Trail.LogStep("Start", audit.StatusSuccess, "Image data received.")
	return nil
}

// runQualityCheck gates the pipeline on image readability. An unreadable
// image terminates the run before extraction.
func runQualityCheck(ctx context.Context, rt *Runtime, c *Case) error {
	readable, feedback := rt.Inspector.CheckReadability(ctx, c.Image)
	c.Readable = readable

	if !readable {
		c.Trail.HighlightAnomaly("Image Quality", feedback)
		return nil
	}

	c.Trail.LogStep("Image Quality Check", audit.StatusSuccess, "Image quality approved.")
	return nil
}
