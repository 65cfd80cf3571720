package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finvolt/banking-core/internal/apperrors"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes the reconciliation auditor to the system principal.
type adminHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newAdminHandler(reconciliationService portssvc.ReconciliationSvcFacade) *adminHandler {
	return &adminHandler{reconciliationService: reconciliationService}
}

// reconcileAccount godoc
// @Summary Reconcile one account against its ledger
// @Description Recomputes the ledger-derived balance and compares it to the stored balance; read-only
// @Tags admin
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.ReconciliationReport
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /admin/reconcile/{accountID} [get]
func (h *adminHandler) reconcileAccount(c *gin.Context) {
	report, err := h.reconciliationService.Reconcile(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// reconcileAll godoc
// @Summary Reconcile every account against the ledger
// @Description Audits all accounts with bounded concurrency and returns one report per account
// @Tags admin
// @Produce  json
// @Success 200 {array} domain.ReconciliationReport
// @Security BearerAuth
// @Router /admin/reconcile [get]
func (h *adminHandler) reconcileAll(c *gin.Context) {
	reports, err := h.reconciliationService.ReconcileAll(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Reconciliation sweep failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation sweep failed"})
		return
	}

	c.JSON(http.StatusOK, reports)
}
