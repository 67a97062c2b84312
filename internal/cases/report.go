package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/counterfoil/teller/internal/audit"
	"github.com/counterfoil/teller/internal/workflow"
)

// Report is the processing digest for a completed case: the decision,
// the extracted cheque data, and a verdict row for every check the run
// reached.
type Report struct {
	ID           uuid.UUID                 `json:"id"`
	Label        string                    `json:"label"`
	Filename     string                    `json:"filename"`
	Status       string                    `json:"status"`
	Decision     string                    `json:"decision"`
	Feedback     []string                  `json:"feedback"`
	Fields       *workflow.ExtractedFields `json:"extracted_fields,omitempty"`
	Checks       []CheckRow                `json:"checks"`
	AnomalyCount int                       `json:"anomaly_count"`
	Summary      string                    `json:"audit_summary,omitempty"`
	LienAdvised  *bool                     `json:"lien_advised,omitempty"`
	LienReason   *string                   `json:"lien_reason,omitempty"`
	ProcessedAt  time.Time                 `json:"processed_at"`
}

// CheckRow is one check's verdict in the report.
type CheckRow struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// checkSources maps report rows to the trail entries the run writes.
// The quality gate records its pass and fail under different labels;
// extraction failures surface as a failed step rather than an anomaly.
var checkSources = []struct {
	name   string
	step   string
	source string
}{
	{"Image Quality", "Image Quality Check", "Image Quality"},
	{"Extraction & Validation", "Extraction & Validation", ""},
	{"Date Validation", "Date Validation", "Date Validation"},
	{"Amount Verification", "Amount Verification", "Amount Verification"},
	{"Tampering Detection", "Tampering Detection", "Tampering Detection"},
	{"Behavior Analysis", "Behavior Analysis", "Behavior Analysis"},
	{"Signature Verification", "Signature Verification", "Signature Verification"},
	{"Account Validation", "Account Validation", "Account Validation"},
}

// buildChecks derives verdict rows from the audit record. Checks the run
// never reached produce no row: a quality exit reports a single failed
// row, not a column of blanks.
func buildChecks(record audit.Record) []CheckRow {
	rows := make([]CheckRow, 0, len(checkSources))

	for _, cs := range checkSources {
		if cs.source != "" {
			if anomaly, ok := record.LatestAnomaly(cs.source); ok {
				rows = append(rows, CheckRow{
					Name:    cs.name,
					Passed:  false,
					Details: anomaly.Details,
				})
				continue
			}
		}

		if step, ok := record.LatestStep(cs.step); ok {
			rows = append(rows, CheckRow{
				Name:    cs.name,
				Passed:  step.Status != audit.StatusFailed,
				Details: step.Summary,
			})
		}
	}

	return rows
}

// buildReport assembles the digest from a processed case's stored
// outcome. Returns ErrNotProcessed when no outcome exists yet.
func buildReport(c *Case) (*Report, error) {
	if c.ProcessedAt == nil || c.AuditLog == nil {
		return nil, ErrNotProcessed
	}

	report := &Report{
		ID:           c.ID,
		Label:        c.Label,
		Filename:     c.Filename,
		Status:       c.Status,
		Feedback:     c.Feedback,
		Fields:       c.Fields,
		Checks:       buildChecks(*c.AuditLog),
		AnomalyCount: c.AnomalyCount,
		LienAdvised:  c.LienAdvised,
		LienReason:   c.LienReason,
		ProcessedAt:  *c.ProcessedAt,
	}

	if c.Decision != nil {
		report.Decision = *c.Decision
	}
	if c.Summary != nil {
		report.Summary = *c.Summary
	}
	if report.Feedback == nil {
		report.Feedback = []string{}
	}

	return report, nil
}
