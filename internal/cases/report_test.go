package cases

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/counterfoil/teller/internal/audit"
	"github.com/counterfoil/teller/internal/workflow"
)

func fullRunRecord() audit.Record {
	return audit.Record{
		CaseID: "cheque-1a2b3c4d",
		Steps: []audit.StepEntry{
			{Step: "Start", Status: audit.StatusSuccess, Summary: "Image data received."},
			{Step: "Image Quality Check", Status: audit.StatusSuccess, Summary: "Image quality approved."},
			{Step: "Extraction & Validation", Status: audit.StatusSuccess, Summary: "Data extracted and validated."},
			{Step: "Date Validation", Status: audit.StatusSuccess, Summary: "Date is valid"},
			{Step: "Amount Verification", Status: audit.StatusSuccess, Summary: "Amounts are consistent."},
			{Step: "Tampering Detection", Status: audit.StatusSuccess, Summary: "No tampering indicators found."},
			{Step: "Behavior Analysis", Status: audit.StatusSuccess, Summary: "Behavior consistent with account history."},
			{Step: "Signature Verification", Status: audit.StatusSuccess, Summary: "Signatures match."},
			{Step: "Fraud Detection", Status: audit.StatusCompleted, Summary: "Fraud found: false"},
			{Step: "Account Validation", Status: audit.StatusSuccess, Summary: "Account is valid."},
		},
	}
}

func TestBuildChecksFullRun(t *testing.T) {
	rows := buildChecks(fullRunRecord())

	want := []CheckRow{
		{Name: "Image Quality", Passed: true, Details: "Image quality approved."},
		{Name: "Extraction & Validation", Passed: true, Details: "Data extracted and validated."},
		{Name: "Date Validation", Passed: true, Details: "Date is valid"},
		{Name: "Amount Verification", Passed: true, Details: "Amounts are consistent."},
		{Name: "Tampering Detection", Passed: true, Details: "No tampering indicators found."},
		{Name: "Behavior Analysis", Passed: true, Details: "Behavior consistent with account history."},
		{Name: "Signature Verification", Passed: true, Details: "Signatures match."},
		{Name: "Account Validation", Passed: true, Details: "Account is valid."},
	}

	if len(rows) != len(want) {
		t.Fatalf("buildChecks() returned %d rows, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		if row != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
}

func TestBuildChecksQualityExit(t *testing.T) {
	record := audit.Record{
		Steps: []audit.StepEntry{
			{Step: "Start", Status: audit.StatusSuccess, Summary: "Image data received."},
		},
		Anomalies: []audit.AnomalyEntry{
			{Source: "Image Quality", Details: "Image too blurry to read."},
		},
	}

	rows := buildChecks(record)

	if len(rows) != 1 {
		t.Fatalf("buildChecks() returned %d rows, want 1", len(rows))
	}
	want := CheckRow{Name: "Image Quality", Passed: false, Details: "Image too blurry to read."}
	if rows[0] != want {
		t.Errorf("row 0 = %+v, want %+v", rows[0], want)
	}
}

func TestBuildChecksExtractionFailure(t *testing.T) {
	record := audit.Record{
		Steps: []audit.StepEntry{
			{Step: "Start", Status: audit.StatusSuccess, Summary: "Image data received."},
			{Step: "Image Quality Check", Status: audit.StatusSuccess, Summary: "Image quality approved."},
			{Step: "Extraction & Validation", Status: audit.StatusFailed, Summary: "Vision extraction failed to produce all key fields."},
		},
	}

	rows := buildChecks(record)

	if len(rows) != 2 {
		t.Fatalf("buildChecks() returned %d rows, want 2", len(rows))
	}
	if rows[0].Name != "Image Quality" || !rows[0].Passed {
		t.Errorf("row 0 = %+v, want passing Image Quality", rows[0])
	}
	if rows[1].Name != "Extraction & Validation" || rows[1].Passed {
		t.Errorf("row 1 = %+v, want failed Extraction & Validation", rows[1])
	}
	if rows[1].Details != "Vision extraction failed to produce all key fields." {
		t.Errorf("row 1 details = %q", rows[1].Details)
	}
}

func TestBuildChecksFraudRun(t *testing.T) {
	record := audit.Record{
		Steps: []audit.StepEntry{
			{Step: "Start", Status: audit.StatusSuccess, Summary: "Image data received."},
			{Step: "Image Quality Check", Status: audit.StatusSuccess, Summary: "Image quality approved."},
			{Step: "Extraction & Validation", Status: audit.StatusSuccess, Summary: "Data extracted and validated."},
			{Step: "Amount Verification", Status: audit.StatusSuccess, Summary: "Amounts are consistent."},
			{Step: "Behavior Analysis", Status: audit.StatusSuccess, Summary: "Behavior consistent with account history."},
			{Step: "Fraud Detection", Status: audit.StatusCompleted, Summary: "Fraud found: true"},
		},
		Anomalies: []audit.AnomalyEntry{
			{Source: "Date Validation", Details: "Post-dated cheque (Date: 2031-01-01)"},
			{Source: "Tampering Detection", Details: "Payee name shows signs of overwriting."},
			{Source: "Signature Verification", Details: "Signature does not match the reference."},
		},
	}

	rows := buildChecks(record)

	passed := map[string]bool{}
	details := map[string]string{}
	for _, row := range rows {
		passed[row.Name] = row.Passed
		details[row.Name] = row.Details
	}

	if len(rows) != 7 {
		t.Fatalf("buildChecks() returned %d rows, want 7", len(rows))
	}
	for _, name := range []string{"Image Quality", "Extraction & Validation", "Amount Verification", "Behavior Analysis"} {
		if !passed[name] {
			t.Errorf("%s row failed, want passed", name)
		}
	}
	for _, name := range []string{"Date Validation", "Tampering Detection", "Signature Verification"} {
		if passed[name] {
			t.Errorf("%s row passed, want failed", name)
		}
	}
	if details["Date Validation"] != "Post-dated cheque (Date: 2031-01-01)" {
		t.Errorf("Date Validation details = %q", details["Date Validation"])
	}
}

func processedCase() *Case {
	decision := string(workflow.DecisionApprove)
	summary := "All checks passed."
	advised := false
	reason := "No lien indicators."
	fraud := false
	processed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := fullRunRecord()

	return &Case{
		ID:            uuid.MustParse("1a2b3c4d-0000-4000-8000-000000000000"),
		Label:         "cheque-1a2b3c4d",
		Filename:      "cheque.png",
		ContentType:   "image/png",
		SizeBytes:     2048,
		StorageKey:    "cheques/1a2b3c4d-0000-4000-8000-000000000000/cheque.png",
		Status:        StatusApproved,
		Decision:      &decision,
		Feedback:      []string{"Cheque processed successfully."},
		Fields:        &workflow.ExtractedFields{Payee: "Apple Tan", Amount: 120.50},
		FraudDetected: &fraud,
		AuditLog:      &record,
		Summary:       &summary,
		LienAdvised:   &advised,
		LienReason:    &reason,
		ReceivedAt:    processed.Add(-time.Minute),
		ProcessedAt:   &processed,
		UpdatedAt:     processed,
	}
}

func TestBuildReport(t *testing.T) {
	c := processedCase()

	report, err := buildReport(c)
	if err != nil {
		t.Fatalf("buildReport() error = %v", err)
	}

	if report.ID != c.ID {
		t.Errorf("ID = %v, want %v", report.ID, c.ID)
	}
	if report.Label != "cheque-1a2b3c4d" {
		t.Errorf("Label = %q", report.Label)
	}
	if report.Filename != "cheque.png" {
		t.Errorf("Filename = %q", report.Filename)
	}
	if report.Status != StatusApproved {
		t.Errorf("Status = %q, want %q", report.Status, StatusApproved)
	}
	if report.Decision != string(workflow.DecisionApprove) {
		t.Errorf("Decision = %q, want %q", report.Decision, workflow.DecisionApprove)
	}
	if report.Summary != "All checks passed." {
		t.Errorf("Summary = %q", report.Summary)
	}
	if len(report.Checks) != 8 {
		t.Errorf("len(Checks) = %d, want 8", len(report.Checks))
	}
	if report.Fields == nil || report.Fields.Payee != "Apple Tan" {
		t.Errorf("Fields = %+v, want payee Apple Tan", report.Fields)
	}
	if report.LienAdvised == nil || *report.LienAdvised {
		t.Errorf("LienAdvised = %v, want false", report.LienAdvised)
	}
	if !report.ProcessedAt.Equal(*c.ProcessedAt) {
		t.Errorf("ProcessedAt = %v, want %v", report.ProcessedAt, *c.ProcessedAt)
	}
}

func TestBuildReportNotProcessed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Case)
	}{
		{"missing processed timestamp", func(c *Case) { c.ProcessedAt = nil }},
		{"missing audit log", func(c *Case) { c.AuditLog = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := processedCase()
			tt.mutate(c)

			if _, err := buildReport(c); !errors.Is(err, ErrNotProcessed) {
				t.Errorf("buildReport() error = %v, want %v", err, ErrNotProcessed)
			}
		})
	}
}

func TestBuildReportEmptyFeedback(t *testing.T) {
	c := processedCase()
	c.Feedback = nil

	report, err := buildReport(c)
	if err != nil {
		t.Fatalf("buildReport() error = %v", err)
	}

	if report.Feedback == nil || len(report.Feedback) != 0 {
		t.Errorf("Feedback = %v, want empty slice", report.Feedback)
	}
}
