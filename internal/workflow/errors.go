package workflow

import "errors"

// Workflow errors. Phase actions absorb check failures into conservative
// verdicts; these errors surface only programming defects.
var (
	// ErrInvalidPhase indicates a transition was requested from a phase
	// with no outgoing route for the case state.
	ErrInvalidPhase = errors.New("invalid workflow phase")

	// ErrStalled indicates the machine failed to reach a terminal phase
	// within the transition budget.
	ErrStalled = errors.New("workflow did not reach a terminal phase")
)
