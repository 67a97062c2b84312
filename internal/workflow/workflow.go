// Package workflow implements the cheque case orchestrator: an explicit
// state machine that sequences the quality gate, field extraction, fraud
// aggregation, and account validation, recording every outcome in the
// case audit trail. Model-backed judgments enter through the capability
// interfaces in steps.go; the orchestrator itself performs no inference.
package workflow

import (
	"context"
	"fmt"
)

// maxTransitions bounds the run loop. The longest route visits five
// phases; exceeding the bound means a routing defect.
const maxTransitions = 8

// Execute runs one cheque case through the machine and returns its
// outcome. Check failures never abort the run: they surface as
// conservative verdicts in the trail and the decision. An error return
// indicates cancellation or a defect, not a bad cheque.
func Execute(ctx context.Context, rt *Runtime, input Input) (*Outcome, error) {
	c := NewCase(input, rt.Logger)

	rt.Logger.InfoContext(ctx, "workflow started", "case", c.ID)

	phase := PhaseStart
	for transitions := 0; !phase.Terminal(); transitions++ {
		if transitions >= maxTransitions {
			return nil, fmt.Errorf("%w: stopped in %s", ErrStalled, phase)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := runPhase(ctx, rt, phase, c); err != nil {
			return nil, fmt.Errorf("phase %s: %w", phase, err)
		}

		next, err := Transition(phase, c)
		if err != nil {
			return nil, err
		}
		phase = next
	}

	resolve(c, phase)
	summary := c.Trail.Summarize(ctx, rt.Formatter)

	rt.Logger.InfoContext(
		ctx, "workflow complete",
		"case", c.ID,
		"decision", string(c.Decision),
		"anomalies", len(c.Trail.Anomalies()),
	)

	return &Outcome{
		CaseID:        c.ID,
		Decision:      c.Decision,
		FraudDetected: c.FraudDetected,
		Feedback:      c.Feedback,
		Fields:        c.Fields,
		Audit:         c.Trail.Record(),
		Summary:       summary,
	}, nil
}

func runPhase(ctx context.Context, rt *Runtime, phase Phase, c *Case) error {
	switch phase {
	case PhaseStart:
		return runStart(ctx, rt, c)
	case PhaseQualityCheck:
		return runQualityCheck(ctx, rt, c)
	case PhaseExtract:
		return runExtract(ctx, rt, c)
	case PhaseFraudScan:
		return runFraudScan(ctx, rt, c)
	case PhaseAccountCheck:
		return runAccountCheck(ctx, rt, c)
	}
	return fmt.Errorf("%w: no action for %s", ErrInvalidPhase, phase)
}

// resolve pins the decision to the terminal phase. The manual review
// phase covers both the pre-extraction quality exit and the fraud route,
// neither of which sets the decision itself.
func resolve(c *Case, terminal Phase) {
	switch terminal {
	case PhaseApproved:
		c.Decision = DecisionApprove
	case PhaseRejected:
		c.Decision = DecisionReject
	case PhaseManualReview:
		c.Decision = DecisionManualReview
	}
}
