// Package clearing validates payer accounts against the institution's
// clearing rule. The rule is a CEL expression over the account number,
// compiled once at startup, so operators can adjust acceptance criteria
// through configuration without a rebuild.
package clearing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
)

// Verdict strings recorded against the audit trail.
const (
	validReason   = "Account details are valid."
	invalidReason = "Invalid or closed account."
)

// System evaluates the clearing rule for payer accounts.
type System interface {
	ValidateAccount(ctx context.Context, account string) (valid bool, reason string)
}

type system struct {
	prg    cel.Program
	logger *slog.Logger
}

// New compiles the configured clearing rule. A rule that fails to
// compile is a startup error, not a per-cheque one.
func New(cfg Config, logger *slog.Logger) (System, error) {
	env, err := cel.NewEnv(cel.Variable("account", cel.StringType))
	if err != nil {
		return nil, fmt.Errorf("create rule environment: %w", err)
	}

	ast, issues := env.Compile(cfg.AccountRule)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile account rule: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build account rule program: %w", err)
	}

	return &system{
		prg:    prg,
		logger: logger.With("system", "clearing"),
	}, nil
}

// ValidateAccount evaluates the clearing rule against one account
// number. Evaluation failure or a non-boolean result is an invalid
// verdict.
func (s *system) ValidateAccount(ctx context.Context, account string) (bool, string) {
	out, _, err := s.prg.Eval(map[string]any{"account": account})
	if err != nil {
		s.logger.WarnContext(ctx, "account rule evaluation failed", "error", err)
		return false, invalidReason
	}

	valid, ok := out.Value().(bool)
	if !ok {
		s.logger.WarnContext(ctx, "account rule returned a non-boolean result", "value", out.Value())
		return false, invalidReason
	}

	if !valid {
		return false, invalidReason
	}

	return true, validReason
}
