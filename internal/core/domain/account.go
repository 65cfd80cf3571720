package domain

// AccountStatus indicates the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// AccountClass distinguishes ordinary customer accounts from issuer accounts.
// Issuer accounts are the only accounts allowed to go negative: they are the
// source of system-issued funds and are debited unconditionally. Ordinary
// accounts are always gated by the balance >= amount condition.
type AccountClass string

const (
	ClassOrdinary AccountClass = "ORDINARY"
	ClassIssuer   AccountClass = "ISSUER"
)

// Account represents a financial account holding a balance in integer minor
// currency units (cents, paise, ...). Balance is only ever mutated through
// the account repository's atomic primitives.
type Account struct {
	AccountID    string        `json:"accountID"`
	UserID       string        `json:"userID"`
	Status       AccountStatus `json:"status"`
	Class        AccountClass  `json:"class"`
	Balance      int64         `json:"balance"`
	CurrencyCode string        `json:"currencyCode"`
	AuditFields
}

// IsActive reports whether the account can participate in transfers.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
