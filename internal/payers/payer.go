// Package payers provides the read-only payer directory consulted during
// fraud analysis. The directory is loaded from a TOML file and optionally
// hot-reloaded when the file changes; it is never written by the service.
package payers

// History summarizes a payer's cheque-writing behavior for the
// behavioral analysis check.
type History struct {
	AvgAmount     float64  `toml:"avg_amount" json:"avg_amount"`
	MaxAmount     float64  `toml:"max_amount" json:"max_amount"`
	TypicalPayees []string `toml:"typical_payees" json:"typical_payees"`
}

// Payer is one directory entry: the account holder's name, the storage
// path of their reference signature, and an optional behavior history.
type Payer struct {
	Name          string   `toml:"name" json:"payer_name"`
	SignaturePath string   `toml:"signature_path" json:"payer_signature_path"`
	History       *History `toml:"history" json:"history,omitempty"`
}

// DefaultHistory returns the placeholder behavior profile used when a
// directory entry carries no recorded history.
func DefaultHistory() History {
	return History{
		AvgAmount: 500.00,
		MaxAmount: 4000.00,
		TypicalPayees: []string{
			"Utility Company",
			"Rentals Inc",
			"Some Company",
		},
	}
}
