package workflow

import (
	"log/slog"

	"github.com/counterfoil/teller/internal/audit"
	"github.com/counterfoil/teller/internal/payers"
)

// Runtime bundles the dependencies phase actions require: the enrichment
// steps, the payer directory and its signature assets, the audit
// formatter, and the logger. It is constructed by higher-level
// composition code and shared across runs; all members are safe for
// concurrent use.
type Runtime struct {
	Inspector  Inspector
	Extractor  Extractor
	Tampering  TamperingDetector
	Behavior   BehaviorAnalyst
	Signatures SignatureComparer
	Accounts   AccountValidator
	Formatter  audit.Formatter

	Directory payers.System
	Assets    payers.AssetStore

	Logger *slog.Logger
}
