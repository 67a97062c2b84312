// Package cases implements the cheque case domain for Teller.
// It provides types, data access, and business logic for cheque intake,
// blob storage integration, workflow processing, and outcome reporting.
package cases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/counterfoil/teller/internal/audit"
	"github.com/counterfoil/teller/internal/workflow"
)

// Case lifecycle statuses. A case starts in received, moves through
// processing while the workflow runs, and lands on the status matching
// its decision. Reprocessing overwrites the prior outcome.
const (
	StatusReceived     = "received"
	StatusProcessing   = "processing"
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	StatusManualReview = "manual_review"
)

// Case represents a registered cheque with its metadata, blob storage
// reference, and the latest processing outcome. Outcome fields are nil
// until the case has been processed.
type Case struct {
	ID            uuid.UUID                 `json:"id"`
	Label         string                    `json:"label"`
	Filename      string                    `json:"filename"`
	ContentType   string                    `json:"content_type"`
	SizeBytes     int64                     `json:"size_bytes"`
	PageCount     *int                      `json:"page_count"`
	StorageKey    string                    `json:"storage_key"`
	Status        string                    `json:"status"`
	Decision      *string                   `json:"decision"`
	Feedback      []string                  `json:"feedback"`
	Fields        *workflow.ExtractedFields `json:"extracted_fields"`
	FraudDetected *bool                     `json:"fraud_detected"`
	AnomalyCount  int                       `json:"anomaly_count"`
	AuditLog      *audit.Record             `json:"audit_log"`
	Summary       *string                   `json:"audit_summary"`
	LienAdvised   *bool                     `json:"lien_advised"`
	LienReason    *string                   `json:"lien_reason"`
	ReceivedAt    time.Time                 `json:"received_at"`
	ProcessedAt   *time.Time                `json:"processed_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// cheque case. Data holds the raw file bytes as received.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

// BatchResult reports the outcome of a single file within a batch intake.
// On success, Case is populated and Error is empty.
// On failure, Error describes the problem and Case is nil.
type BatchResult struct {
	Case     *Case  `json:"case,omitempty"`
	Filename string `json:"filename"`
	Error    string `json:"error,omitempty"`
}

// Advisor recommends lien markings for cheques that cleared the workflow.
// Advice is recorded alongside the case outcome and never alters the
// decision itself.
type Advisor interface {
	AdviseLien(ctx context.Context, fields *workflow.ExtractedFields) (bool, string)
}

func statusForDecision(d workflow.Decision) string {
	switch d {
	case workflow.DecisionApprove:
		return StatusApproved
	case workflow.DecisionReject:
		return StatusRejected
	default:
		return StatusManualReview
	}
}

// caseLabel derives the short human-facing identifier used across the
// audit trail, logs, and reports.
func caseLabel(id uuid.UUID) string {
	return fmt.Sprintf("cheque-%x", id[:4])
}
