// Package audit provides the append-only processing trail attached to each
// cheque case. Steps and anomalies are recorded as separate ordered
// sequences; entries are never removed or rewritten once appended.
package audit

import (
	"fmt"
	"log/slog"
)

// StepStatus is the recorded outcome of a processing step.
type StepStatus string

const (
	StatusSuccess   StepStatus = "Success"
	StatusFailed    StepStatus = "Failed"
	StatusCompleted StepStatus = "Completed"
)

// StepEntry records one processing step outcome.
type StepEntry struct {
	Step    string     `json:"step"`
	Status  StepStatus `json:"status"`
	Summary string     `json:"summary"`
}

// String renders the entry in the trail's line format.
func (e StepEntry) String() string {
	return fmt.Sprintf("Step: %s, Status: %s, Summary: %s", e.Step, e.Status, e.Summary)
}

// AnomalyEntry records one flagged anomaly.
type AnomalyEntry struct {
	Source  string `json:"source"`
	Details string `json:"details"`
}

// String renders the entry in the trail's line format.
func (e AnomalyEntry) String() string {
	return fmt.Sprintf("Source: %s, Details: %s", e.Source, e.Details)
}

// Record is the serializable form of a trail, suitable for persistence
// alongside the case outcome.
type Record struct {
	CaseID    string         `json:"case_id"`
	Steps     []StepEntry    `json:"steps"`
	Anomalies []AnomalyEntry `json:"anomalies"`
}

// LatestStep returns the most recent step entry with the given name,
// searching from the end of the trail.
func (r Record) LatestStep(name string) (StepEntry, bool) {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		if r.Steps[i].Step == name {
			return r.Steps[i], true
		}
	}
	return StepEntry{}, false
}

// LatestAnomaly returns the most recent anomaly entry with the given
// source, searching from the end of the trail.
func (r Record) LatestAnomaly(source string) (AnomalyEntry, bool) {
	for i := len(r.Anomalies) - 1; i >= 0; i-- {
		if r.Anomalies[i].Source == source {
			return r.Anomalies[i], true
		}
	}
	return AnomalyEntry{}, false
}

// Trail accumulates the processing history for one cheque case. A trail
// belongs to a single orchestrator run and is not safe for concurrent use.
type Trail struct {
	caseID    string
	logger    *slog.Logger
	steps     []StepEntry
	anomalies []AnomalyEntry
}

// NewTrail creates a trail for the given case.
func NewTrail(caseID string, logger *slog.Logger) *Trail {
	t := &Trail{
		caseID: caseID,
		logger: logger.With("case", caseID),
	}
	t.logger.Info("audit trail started")
	return t
}

// CaseID returns the case identifier the trail belongs to.
func (t *Trail) CaseID() string {
	return t.caseID
}

// LogStep appends a step outcome to the trail.
func (t *Trail) LogStep(step string, status StepStatus, summary string) {
	entry := StepEntry{Step: step, Status: status, Summary: summary}
	t.steps = append(t.steps, entry)
	t.logger.Info("audit step", "step", step, "status", string(status), "summary", summary)
}

// HighlightAnomaly appends a flagged anomaly to the trail.
func (t *Trail) HighlightAnomaly(source, details string) {
	entry := AnomalyEntry{Source: source, Details: details}
	t.anomalies = append(t.anomalies, entry)
	t.logger.Warn("anomaly detected", "source", source, "details", details)
}

// Steps returns a copy of the step entries in insertion order.
func (t *Trail) Steps() []StepEntry {
	out := make([]StepEntry, len(t.steps))
	copy(out, t.steps)
	return out
}

// Anomalies returns a copy of the anomaly entries in insertion order.
func (t *Trail) Anomalies() []AnomalyEntry {
	out := make([]AnomalyEntry, len(t.anomalies))
	copy(out, t.anomalies)
	return out
}

// Record returns the serializable snapshot of the trail.
func (t *Trail) Record() Record {
	return Record{
		CaseID:    t.caseID,
		Steps:     t.Steps(),
		Anomalies: t.Anomalies(),
	}
}
