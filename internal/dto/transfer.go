package dto

import "github.com/finvolt/banking-core/internal/core/domain"

// CreateTransferRequest is the boundary-validated payload for a transfer.
// The core only ever sees this typed value, never loose input.
type CreateTransferRequest struct {
	FromAccount    string `json:"fromAccount" binding:"required,uuid4"`
	ToAccount      string `json:"toAccount" binding:"required,uuid4,nefield=FromAccount"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required,min=1,max=256"`
}

// CreateIssuanceRequest is the payload for a system funds issuance.
type CreateIssuanceRequest struct {
	ToAccount      string `json:"toAccount" binding:"required,uuid4"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required,min=1,max=256"`
}

// TransferOutcome classifies how a submission was resolved.
type TransferOutcome string

const (
	// OutcomeCreated means the transfer executed in this call.
	OutcomeCreated TransferOutcome = "CREATED"
	// OutcomeAlreadyProcessed means the idempotency key matched a completed
	// transfer; the cached transaction is returned and no new work was done.
	OutcomeAlreadyProcessed TransferOutcome = "ALREADY_PROCESSED"
	// OutcomeInProgress means the key matched a transfer still pending.
	OutcomeInProgress TransferOutcome = "IN_PROGRESS"
	// OutcomeConflictReuse means the key matched a terminal non-success
	// transfer; the caller must retry under a new key.
	OutcomeConflictReuse TransferOutcome = "CONFLICT_REUSE"
)

// TransferResult is the orchestrator's answer for a submission that did not
// fail outright. Rejections (permission, invalid target, insufficient funds,
// engine failure) are returned as errors instead.
type TransferResult struct {
	Outcome     TransferOutcome     `json:"outcome"`
	Transaction *domain.Transaction `json:"transaction"`
}
