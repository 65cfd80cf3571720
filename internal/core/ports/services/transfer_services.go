package services

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/finvolt/banking-core/internal/dto"
)

// TransferSvcFacade is the transaction orchestrator contract.
type TransferSvcFacade interface {
	// SubmitTransfer drives a transfer through the idempotency gate, the
	// atomic debit/credit sequence, the double-entry ledger and bounded
	// retry. Rejections are returned as errors from the apperrors taxonomy.
	SubmitTransfer(ctx context.Context, principal domain.Principal, req dto.CreateTransferRequest) (*dto.TransferResult, error)

	// SubmitSystemIssuance credits a target account from the designated
	// issuer account. Privileged principals only.
	SubmitSystemIssuance(ctx context.Context, principal domain.Principal, req dto.CreateIssuanceRequest) (*dto.TransferResult, error)
}
