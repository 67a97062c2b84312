package workflow

import "fmt"

// Phase identifies a state in the case processing machine.
type Phase string

// Processing phases. The machine is a strict DAG: start → quality_check →
// extract → fraud_scan → account_check, with three terminal phases.
const (
	PhaseStart        Phase = "start"
	PhaseQualityCheck Phase = "quality_check"
	PhaseExtract      Phase = "extract"
	PhaseFraudScan    Phase = "fraud_scan"
	PhaseAccountCheck Phase = "account_check"
	PhaseApproved     Phase = "approved"
	PhaseRejected     Phase = "rejected"
	PhaseManualReview Phase = "manual_review"
)

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseApproved, PhaseRejected, PhaseManualReview:
		return true
	}
	return false
}

// Transition computes the next phase from the current phase and the case
// state its action produced. Pure function: no side effects, each routing
// condition consulted exactly once per run.
func Transition(p Phase, c *Case) (Phase, error) {
	switch p {
	case PhaseStart:
		return PhaseQualityCheck, nil

	case PhaseQualityCheck:
		if !c.Readable {
			return PhaseManualReview, nil
		}
		return PhaseExtract, nil

	case PhaseExtract:
		if c.Decision == DecisionManualReview {
			return PhaseManualReview, nil
		}
		return PhaseFraudScan, nil

	case PhaseFraudScan:
		if c.FraudDetected {
			return PhaseManualReview, nil
		}
		return PhaseAccountCheck, nil

	case PhaseAccountCheck:
		switch c.Decision {
		case DecisionApprove:
			return PhaseApproved, nil
		case DecisionReject:
			return PhaseRejected, nil
		}
		return "", fmt.Errorf("%w: account check left no decision", ErrInvalidPhase)
	}

	return "", fmt.Errorf("%w: no transition from %s", ErrInvalidPhase, p)
}
