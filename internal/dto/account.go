package dto

// CreateAccountRequest is the payload for opening a new account.
type CreateAccountRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency_code"`
}

// LedgerListRequest carries pagination for the ledger view.
type LedgerListRequest struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
