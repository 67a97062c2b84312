package vision

import (
	"context"

	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/formatting"
)

const signatureFallback = "Signature comparison analysis failed due to an error."

type signatureVerdict struct {
	SignaturesMatch bool   `json:"signatures_match"`
	Reason          string `json:"reason"`
}

// CompareSignatures performs a forensic comparison of the cheque
// signature against the payer's reference. The cheque signature is sent
// first, the reference second, matching the prompt's framing. Any call
// or parse failure yields a no-match verdict.
func (s *System) CompareSignatures(ctx context.Context, cheque, reference workflow.Image) (bool, string) {
	if len(cheque.Data) == 0 || len(reference.Data) == 0 {
		return false, "One of the signature images is missing."
	}

	content, err := s.callVision(ctx, prompts.StageSignature, nil, cheque, reference)
	if err != nil {
		s.logger.WarnContext(ctx, "signature comparison failed", "error", err)
		return false, signatureFallback
	}

	verdict, err := formatting.Parse[signatureVerdict](content)
	if err != nil {
		s.logger.WarnContext(ctx, "signature comparison failed", "error", err)
		return false, signatureFallback
	}

	return verdict.SignaturesMatch, orNoReason(verdict.Reason)
}
