package vision

import (
	"context"

	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/formatting"
)

const unreadableFallback = "Failed to analyze image quality."

type qualityVerdict struct {
	IsReadable bool   `json:"is_readable"`
	Feedback   string `json:"feedback"`
}

// CheckReadability judges whether the cheque image supports reliable
// extraction. Any call or parse failure yields an unreadable verdict.
func (s *System) CheckReadability(ctx context.Context, img workflow.Image) (bool, string) {
	content, err := s.callVision(ctx, prompts.StageQuality, nil, img)
	if err != nil {
		s.logger.WarnContext(ctx, "readability check failed", "error", err)
		return false, unreadableFallback
	}

	verdict, err := formatting.Parse[qualityVerdict](content)
	if err != nil {
		s.logger.WarnContext(ctx, "readability check failed", "error", err)
		return false, unreadableFallback
	}

	if verdict.Feedback == "" {
		verdict.Feedback = "No feedback provided."
	}

	return verdict.IsReadable, verdict.Feedback
}
