package workflow

import (
	"context"

	"github.com/counterfoil/teller/internal/audit"
)

// runAccountCheck validates the payer account and sets the terminal
// decision: a failing account rejects the cheque, a valid one approves it.
func runAccountCheck(ctx context.Context, rt *Runtime, c *Case) error {
	valid, reason := rt.Accounts.ValidateAccount(ctx, c.Fields.AccountNumber)
	if !valid {
		c.Trail.HighlightAnomaly("Account Validation", reason)
		c.Decision = DecisionReject
		return nil
	}

	c.Trail.LogStep("Account Validation", audit.StatusSuccess, "Account is valid.")
	c.Feedback = append(c.Feedback, "Cheque processed successfully.")
	c.Decision = DecisionApprove

	return nil
}
