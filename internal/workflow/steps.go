package workflow

import "context"

// The enrichment-step capability interfaces. Each implementation owns the
// conservative-failure contract for its check: on any failure (service
// unreachable, malformed response) it returns the verdict that forces the
// safest downstream handling, with a descriptive reason. Implementations
// are stateless across invocations and side-effect free.

// Inspector judges whether a cheque image is readable enough to process.
// The conservative verdict on failure is unreadable.
type Inspector interface {
	CheckReadability(ctx context.Context, img Image) (readable bool, feedback string)
}

// Extractor reads structured fields off the cheque face and computes the
// embedded validation outcomes. Extraction is the one step whose failure
// is an error: the orchestrator records it and routes to manual review.
type Extractor interface {
	Extract(ctx context.Context, img Image) (*ExtractedFields, error)
}

// TamperingDetector scans for visual signs of alteration. The
// conservative verdict on failure is tampered.
type TamperingDetector interface {
	DetectTampering(ctx context.Context, img Image) (tampered bool, details string)
}

// BehaviorAnalyst compares the cheque against the payer's historical
// behavior. Implementations resolve the payer themselves; an unknown
// account is an anomalous verdict, as is any analysis failure.
type BehaviorAnalyst interface {
	AnalyzeBehavior(ctx context.Context, fields *ExtractedFields) (anomalous bool, details string)
}

// SignatureComparer performs a forensic comparison of the cheque
// signature against the payer's reference. The conservative verdict on
// failure is no match.
type SignatureComparer interface {
	CompareSignatures(ctx context.Context, cheque, reference Image) (match bool, reason string)
}

// AccountValidator checks the payer account against the clearing rule.
// Repeated calls with the same account yield the same verdict.
type AccountValidator interface {
	ValidateAccount(ctx context.Context, account string) (valid bool, reason string)
}
