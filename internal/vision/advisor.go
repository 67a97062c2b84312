package vision

import (
	"context"

	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/formatting"
)

const (
	lienResponseFallback = "Analysis failed due to model response error."
	lienCallFallback     = "Analysis failed due to API error."
)

// Pointer fields distinguish a missing key from an explicit false or
// empty reason; an incomplete response is treated as a failure.
type lienAdvice struct {
	PredictLien *bool   `json:"predict_lien"`
	Reason      *string `json:"reason"`
}

// AdviseLien recommends whether a lien marking should precede funds
// release for an approved cheque. The judgment is advisory: any failure
// yields a no-lien verdict with the failure noted as the reason.
func (s *System) AdviseLien(ctx context.Context, fields *workflow.ExtractedFields) (bool, string) {
	content, err := s.callChat(ctx, prompts.StageLien, fields)
	if err != nil {
		s.logger.WarnContext(ctx, "lien advisory failed", "error", err)
		return false, lienCallFallback
	}

	advice, err := formatting.Parse[lienAdvice](content)
	if err != nil || advice.PredictLien == nil || advice.Reason == nil {
		s.logger.WarnContext(ctx, "lien advisory returned an incomplete response")
		return false, lienResponseFallback
	}

	return *advice.PredictLien, *advice.Reason
}
