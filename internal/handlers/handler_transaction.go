package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finvolt/banking-core/internal/apperrors"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/dto"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for transfers.
type transactionHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransactionHandler(transferService portssvc.TransferSvcFacade) *transactionHandler {
	return &transactionHandler{transferService: transferService}
}

// createTransaction godoc
// @Summary Transfer funds between accounts
// @Description Executes an idempotent transfer from one of the caller's accounts to a destination account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer request"
// @Success 200 {object} dto.TransferResult "Idempotent replay of a previous submission"
// @Success 201 {object} dto.TransferResult "Transfer executed"
// @Failure 400 {object} map[string]string "Validation failure, invalid destination or insufficient funds"
// @Failure 403 {object} map[string]string "Source account not owned by caller"
// @Failure 409 {object} dto.TransferResult "Idempotency key reused after a failed transaction"
// @Failure 500 {object} map[string]string "Engine failure; safe to resubmit with the same key"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid transfer payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	principal, ok := middleware.GetPrincipalFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.transferService.SubmitTransfer(c.Request.Context(), principal, req)
	if err != nil {
		h.writeTransferError(c, err)
		return
	}

	h.writeTransferResult(c, result)
}

// createInitialFunds godoc
// @Summary Issue initial funds from the system account
// @Description Credits a target account from the designated issuer account; system principals only
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   issuance body dto.CreateIssuanceRequest true "Issuance request"
// @Success 200 {object} dto.TransferResult "Idempotent replay of a previous submission"
// @Success 201 {object} dto.TransferResult "Issuance executed"
// @Failure 400 {object} map[string]string "Validation failure or invalid destination"
// @Failure 403 {object} map[string]string "Caller is not the system principal"
// @Failure 500 {object} map[string]string "Engine failure; safe to resubmit with the same key"
// @Security BearerAuth
// @Router /transactions/system/initial-funds [post]
func (h *transactionHandler) createInitialFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateIssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid issuance payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	principal, ok := middleware.GetPrincipalFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.transferService.SubmitSystemIssuance(c.Request.Context(), principal, req)
	if err != nil {
		h.writeTransferError(c, err)
		return
	}

	h.writeTransferResult(c, result)
}

func (h *transactionHandler) writeTransferResult(c *gin.Context, result *dto.TransferResult) {
	switch result.Outcome {
	case dto.OutcomeCreated:
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Transaction completed successfully",
			"outcome":     result.Outcome,
			"transaction": result.Transaction,
		})
	case dto.OutcomeAlreadyProcessed:
		c.JSON(http.StatusOK, gin.H{
			"message":     "Transaction already processed",
			"outcome":     result.Outcome,
			"transaction": result.Transaction,
		})
	case dto.OutcomeInProgress:
		c.JSON(http.StatusOK, gin.H{
			"message":     "Transaction is still processing",
			"outcome":     result.Outcome,
			"transaction": result.Transaction,
		})
	case dto.OutcomeConflictReuse:
		c.JSON(http.StatusConflict, gin.H{
			"message":     "Transaction previously failed. Use a new idempotencyKey to retry.",
			"outcome":     result.Outcome,
			"transaction": result.Transaction,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unknown transfer outcome"})
	}
}

func (h *transactionHandler) writeTransferError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var insufficient *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":        "Insufficient funds",
			"currentBalance": insufficient.CurrentBalance,
		})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid fromAccount or insufficient permissions"})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrAccountInactive):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid toAccount"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrIdempotencyConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		logger.Error("Transaction failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Transaction failed. Please try again."})
	}
}
