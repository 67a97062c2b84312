package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/counterfoil/teller/internal/audit"
	"github.com/counterfoil/teller/internal/prompts"
)

type summaryPayload struct {
	ChequeID   string `json:"cheque_id"`
	FullLog    string `json:"full_log"`
	AnomalyLog string `json:"anomaly_log"`
}

// Summarize renders a completed trail into a narrative audit report.
func (s *System) Summarize(ctx context.Context, record audit.Record) (string, error) {
	steps := make([]string, len(record.Steps))
	for i, e := range record.Steps {
		steps[i] = e.String()
	}

	anomalyLog := "None"
	if len(record.Anomalies) > 0 {
		lines := make([]string, len(record.Anomalies))
		for i, e := range record.Anomalies {
			lines[i] = e.String()
		}
		anomalyLog = strings.Join(lines, "\n")
	}

	payload := summaryPayload{
		ChequeID:   record.CaseID,
		FullLog:    strings.Join(steps, "\n"),
		AnomalyLog: anomalyLog,
	}

	content, err := s.callChat(ctx, prompts.StageSummary, payload)
	if err != nil {
		return "", fmt.Errorf("summarize trail: %w", err)
	}

	return strings.TrimSpace(content), nil
}
