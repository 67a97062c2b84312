package cases

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/counterfoil/teller/internal/audit"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/query"
	"github.com/counterfoil/teller/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "cases", "c").
	Project("id", "ID").
	Project("label", "Label").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("decision", "Decision").
	Project("feedback", "Feedback").
	Project("extracted_fields", "Fields").
	Project("fraud_detected", "FraudDetected").
	Project("anomaly_count", "AnomalyCount").
	Project("audit_log", "AuditLog").
	Project("audit_summary", "Summary").
	Project("lien_advised", "LienAdvised").
	Project("lien_reason", "LienReason").
	Project("received_at", "ReceivedAt").
	Project("processed_at", "ProcessedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "ReceivedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for case queries.
// Nil fields are ignored. Status, Decision, ContentType, FraudDetected,
// and LienAdvised use exact matching. Filename and Label use
// case-insensitive contains matching.
type Filters struct {
	Status        *string `json:"status,omitempty"`
	Decision      *string `json:"decision,omitempty"`
	Filename      *string `json:"filename,omitempty"`
	Label         *string `json:"label,omitempty"`
	ContentType   *string `json:"content_type,omitempty"`
	FraudDetected *bool   `json:"fraud_detected,omitempty"`
	LienAdvised   *bool   `json:"lien_advised,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Decision", f.Decision).
		WhereContains("Filename", f.Filename).
		WhereContains("Label", f.Label).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("FraudDetected", f.FraudDetected).
		WhereEquals("LienAdvised", f.LienAdvised)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if d := values.Get("decision"); d != "" {
		f.Decision = &d
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if fd := values.Get("fraud_detected"); fd != "" {
		if v, err := strconv.ParseBool(fd); err == nil {
			f.FraudDetected = &v
		}
	}

	if la := values.Get("lien_advised"); la != "" {
		if v, err := strconv.ParseBool(la); err == nil {
			f.LienAdvised = &v
		}
	}

	return f
}

func scanCase(s repository.Scanner) (Case, error) {
	var (
		c           Case
		feedbackRaw []byte
		fieldsRaw   []byte
		auditRaw    []byte
	)

	err := s.Scan(
		&c.ID,
		&c.Label,
		&c.Filename,
		&c.ContentType,
		&c.SizeBytes,
		&c.PageCount,
		&c.StorageKey,
		&c.Status,
		&c.Decision,
		&feedbackRaw,
		&fieldsRaw,
		&c.FraudDetected,
		&c.AnomalyCount,
		&auditRaw,
		&c.Summary,
		&c.LienAdvised,
		&c.LienReason,
		&c.ReceivedAt,
		&c.ProcessedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Case{}, err
	}

	if len(feedbackRaw) > 0 {
		if err := json.Unmarshal(feedbackRaw, &c.Feedback); err != nil {
			return Case{}, fmt.Errorf("decode feedback: %w", err)
		}
	}
	if c.Feedback == nil {
		c.Feedback = []string{}
	}

	if len(fieldsRaw) > 0 {
		c.Fields = &workflow.ExtractedFields{}
		if err := json.Unmarshal(fieldsRaw, c.Fields); err != nil {
			return Case{}, fmt.Errorf("decode extracted fields: %w", err)
		}
	}

	if len(auditRaw) > 0 {
		c.AuditLog = &audit.Record{}
		if err := json.Unmarshal(auditRaw, c.AuditLog); err != nil {
			return Case{}, fmt.Errorf("decode audit log: %w", err)
		}
	}

	return c, nil
}
