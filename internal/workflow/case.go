package workflow

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/counterfoil/teller/internal/audit"
)

// Decision is the terminal disposition of a cheque case.
type Decision string

const (
	DecisionApprove      Decision = "APPROVE"
	DecisionReject       Decision = "REJECT"
	DecisionManualReview Decision = "MANUAL_REVIEW"
)

// Image is a cheque image payload with its media type.
type Image struct {
	Data []byte
	MIME string
}

// ExtractedFields holds the structured data read off the cheque face,
// including the validation outcomes computed during extraction. Populated
// once by the extraction phase and read-only afterward.
type ExtractedFields struct {
	Payee            string  `json:"payee"`
	Amount           float64 `json:"amount"`
	AmountInWords    string  `json:"amount_in_words"`
	Date             string  `json:"date"`
	AccountNumber    string  `json:"payer_account_number"`
	MICRLine         string  `json:"micr_line"`
	DateValid        bool    `json:"is_date_valid"`
	DateReason       string  `json:"date_validation_reason"`
	AmountConsistent bool    `json:"is_amount_consistent"`
	AmountReason     string  `json:"validation_reason"`

	// Signature is the cropped signature region, present only when the
	// extraction located one. Excluded from serialized field output.
	Signature *Image `json:"-"`
}

// Input is one orchestrator run's payload. Label is optional; runs
// without one get a generated case label.
type Input struct {
	Image Image
	Label string
}

// Outcome is the terminal artifact of a run.
type Outcome struct {
	CaseID        string           `json:"case_id"`
	Decision      Decision         `json:"decision"`
	FraudDetected bool             `json:"fraud_detected"`
	Feedback      []string         `json:"feedback"`
	Fields        *ExtractedFields `json:"extracted_fields,omitempty"`
	Audit         audit.Record     `json:"audit"`
	Summary       string           `json:"audit_summary"`
}

// Case is the run-scoped record owned by a single orchestrator run.
// Phase actions mutate it; it is discarded once the outcome is returned.
type Case struct {
	ID    string
	Image Image

	Fields        *ExtractedFields
	Readable      bool
	FraudDetected bool
	Decision      Decision
	Feedback      []string

	Trail *audit.Trail
}

// NewCase creates a case with an audit trail. The label from the input
// is kept when present so repeat runs against a stored cheque share a
// case identifier; otherwise a fresh one is generated.
func NewCase(input Input, logger *slog.Logger) *Case {
	label := input.Label
	if label == "" {
		id := uuid.New()
		label = fmt.Sprintf("cheque-%x", id[:4])
	}

	return &Case{
		ID:       label,
		Image:    input.Image,
		Feedback: []string{},
		Trail:    audit.NewTrail(label, logger),
	}
}
