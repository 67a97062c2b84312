package workflow

import (
	"context"

	"github.com/counterfoil/teller/internal/audit"
)

// runExtract populates the case fields. Extraction failure is recorded
// and routes the case to manual review; no field-dependent step runs
// after a failed extraction.
func runExtract(ctx context.Context, rt *Runtime, c *Case) error {
	fields, err := rt.Extractor.Extract(ctx, c.Image)
	if err != nil {
		c.Trail.LogStep("Extraction & Validation", audit.StatusFailed, err.Error())
		c.Decision = DecisionManualReview
		return nil
	}

	c.Trail.LogStep("Extraction & Validation", audit.StatusSuccess, "Data extracted and validated.")
	c.Fields = fields

	rt.Logger.InfoContext(
		ctx, "extraction complete",
		"case", c.ID,
		"payee", fields.Payee,
		"amount", fields.Amount,
		"signature_found", fields.Signature != nil,
	)

	return nil
}
