package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/counterfoil/teller/internal/audit"
)

// Audit source names for the fraud checks.
const (
	sourceDate      = "Date Validation"
	sourceAmount    = "Amount Verification"
	sourceTampering = "Tampering Detection"
	sourceBehavior  = "Behavior Analysis"
	sourceSignature = "Signature Verification"
)

// runFraudScan executes the fraud checks in fixed order. Every check runs
// and has its outcome recorded; no verdict short-circuits the rest. The
// case fraud flag is the OR of the individual verdicts.
func runFraudScan(ctx context.Context, rt *Runtime, c *Case) error {
	fraud := false
	trail := c.Trail
	fields := c.Fields

	if !fields.DateValid {
		reason := fields.DateReason
		if reason == "" {
			reason = "The extracted date is invalid."
		}
		trail.HighlightAnomaly(sourceDate, reason)
		fraud = true
	} else {
		reason := fields.DateReason
		if reason == "" {
			reason = "Date is valid"
		}
		trail.LogStep(sourceDate, audit.StatusSuccess, reason)
	}

	if !fields.AmountConsistent {
		reason := fields.AmountReason
		if reason == "" {
			reason = "Amounts do not match."
		}
		trail.HighlightAnomaly(sourceAmount, reason)
		fraud = true
	} else {
		reason := fields.AmountReason
		if reason == "" {
			reason = "Amounts are consistent."
		}
		trail.LogStep(sourceAmount, audit.StatusSuccess, reason)
	}

	if tampered, details := rt.Tampering.DetectTampering(ctx, c.Image); tampered {
		trail.HighlightAnomaly(sourceTampering, details)
		fraud = true
	} else {
		if details == "" {
			details = "No tampering indicators found."
		}
		trail.LogStep(sourceTampering, audit.StatusSuccess, details)
	}

	if anomalous, details := rt.Behavior.AnalyzeBehavior(ctx, fields); anomalous {
		trail.HighlightAnomaly(sourceBehavior, details)
		fraud = true
	} else {
		if details == "" {
			details = "Behavior consistent with account history."
		}
		trail.LogStep(sourceBehavior, audit.StatusSuccess, details)
	}

	if verifySignature(ctx, rt, c) {
		fraud = true
	}

	trail.LogStep("Fraud Detection", audit.StatusCompleted, fmt.Sprintf("Fraud found: %t", fraud))
	c.FraudDetected = fraud

	return nil
}

// verifySignature runs the signature comparison when a signature region
// was extracted and an account number is available; otherwise the check
// cannot run and is skipped without an audit entry. An unresolvable payer
// is an anomaly; a reference asset that fails to load is recorded without
// raising the fraud flag.
func verifySignature(ctx context.Context, rt *Runtime, c *Case) bool {
	fields := c.Fields

	if fields.Signature == nil || fields.AccountNumber == "" {
		rt.Logger.DebugContext(
			ctx, "signature verification skipped",
			"case", c.ID,
			"signature_found", fields.Signature != nil,
		)
		return false
	}

	account := strings.TrimSpace(fields.AccountNumber)

	payer, ok := rt.Directory.Lookup(account)
	if !ok {
		c.Trail.HighlightAnomaly(
			sourceSignature,
			fmt.Sprintf("Payer account '%s' not found in database.", fields.AccountNumber),
		)
		return true
	}

	reference, err := rt.Assets.Load(ctx, payer.SignaturePath)
	if err != nil {
		c.Trail.HighlightAnomaly(sourceSignature, fmt.Sprintf("Error during comparison: %v", err))
		return false
	}

	match, reason := rt.Signatures.CompareSignatures(
		ctx,
		*fields.Signature,
		Image{Data: reference, MIME: "image/png"},
	)
	if !match {
		c.Trail.HighlightAnomaly(sourceSignature, reason)
		return true
	}

	c.Trail.LogStep(sourceSignature, audit.StatusSuccess, reason)
	return false
}
