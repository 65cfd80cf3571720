package domain

import "time"

// EntryType indicates whether a ledger entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// LedgerEntry is one immutable line of the audit trail. Entries are
// append-only: they are created inside a transfer's atomic scope and never
// updated or deleted afterwards. Every completed transaction produces exactly
// one DEBIT and one CREDIT entry of equal amount.
type LedgerEntry struct {
	EntryID       string    `json:"entryID"`
	AccountID     string    `json:"accountID"`
	TransactionID string    `json:"transactionID"`
	Type          EntryType `json:"type"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LedgerTotals aggregates an account's ledger by entry type.
type LedgerTotals struct {
	TotalDebit  int64 `json:"totalDebit"`
	TotalCredit int64 `json:"totalCredit"`
}

// Balance returns the ledger-derived balance: credits minus debits.
func (t LedgerTotals) Balance() int64 {
	return t.TotalCredit - t.TotalDebit
}
