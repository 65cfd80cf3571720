package domain

// TransactionStatus indicates the state of a transfer attempt.
// Transitions are monotonic: PENDING -> COMPLETED or PENDING -> FAILED.
// A terminal status is never re-entered to PENDING.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionReversed  TransactionStatus = "REVERSED"
)

// IsTerminal reports whether the status is a final state.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionCompleted || s == TransactionFailed || s == TransactionReversed
}

// Transaction records one logical transfer attempt between two accounts.
// The idempotency key uniquely identifies the attempt: resubmission with the
// same key must never create a second Transaction record.
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	FromAccountID  string            `json:"fromAccount"`
	ToAccountID    string            `json:"toAccount"`
	Amount         int64             `json:"amount"`
	IdempotencyKey string            `json:"idempotencyKey"`
	Status         TransactionStatus `json:"status"`
	AuditFields
}
