package domain

import "time"

// ReconciliationReport compares an account's stored balance against the
// balance derived from its ledger entries. The stored balance is the gating
// source of truth; the ledger balance is an audit signal. A non-zero drift is
// a critical anomaly for operator follow-up, never auto-corrected.
type ReconciliationReport struct {
	AccountID      string        `json:"accountID"`
	UserID         string        `json:"userID"`
	CurrencyCode   string        `json:"currency"`
	Status         AccountStatus `json:"status"`
	StoredBalance  int64         `json:"storedBalance"`
	LedgerBalance  int64         `json:"ledgerBalance"`
	Drift          int64         `json:"drift"`
	IsSynchronized bool          `json:"isSynchronized"`
	ReconciledAt   time.Time     `json:"reconciledAt"`
}
