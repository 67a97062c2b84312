package vision

import (
	"context"

	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/formatting"
)

const tamperedFallback = "Analysis failed, flagging for review."

type tamperingVerdict struct {
	IsTampered bool   `json:"is_tampered"`
	Reason     string `json:"reason"`
}

// DetectTampering scans the cheque image for signs of alteration. Any
// call or parse failure yields a tampered verdict.
func (s *System) DetectTampering(ctx context.Context, img workflow.Image) (bool, string) {
	content, err := s.callVision(ctx, prompts.StageTampering, nil, img)
	if err != nil {
		s.logger.WarnContext(ctx, "tampering scan failed", "error", err)
		return true, tamperedFallback
	}

	verdict, err := formatting.Parse[tamperingVerdict](content)
	if err != nil {
		s.logger.WarnContext(ctx, "tampering scan failed", "error", err)
		return true, tamperedFallback
	}

	return verdict.IsTampered, orNoReason(verdict.Reason)
}
