package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/formatting"
)

const behaviorFallback = "Behavioral analysis failed."

type historySummary struct {
	payers.History
	AccountHolder string `json:"account_holder"`
}

type behaviorPayload struct {
	History     historySummary            `json:"historical_behavior_summary"`
	Transaction *workflow.ExtractedFields `json:"new_transaction"`
}

type behaviorVerdict struct {
	IsAnomalous bool   `json:"is_anomalous"`
	Reason      string `json:"reason"`
}

// AnalyzeBehavior compares the cheque against the payer's historical
// behavior. An account absent from the directory is itself an anomaly;
// any call or parse failure yields an anomalous verdict.
func (s *System) AnalyzeBehavior(ctx context.Context, fields *workflow.ExtractedFields) (bool, string) {
	payer, ok := s.directory.Lookup(strings.TrimSpace(fields.AccountNumber))
	if !ok {
		return true, fmt.Sprintf("Account number '%s' not found in payer database.", fields.AccountNumber)
	}

	history := payer.History
	if history == nil {
		fallback := payers.DefaultHistory()
		history = &fallback
	}

	payload := behaviorPayload{
		History: historySummary{
			History:       *history,
			AccountHolder: payer.Name,
		},
		Transaction: fields,
	}

	content, err := s.callChat(ctx, prompts.StageBehavior, payload)
	if err != nil {
		s.logger.WarnContext(ctx, "behavior analysis failed", "error", err)
		return true, behaviorFallback
	}

	verdict, err := formatting.Parse[behaviorVerdict](content)
	if err != nil {
		s.logger.WarnContext(ctx, "behavior analysis failed", "error", err)
		return true, behaviorFallback
	}

	return verdict.IsAnomalous, orNoReason(verdict.Reason)
}
