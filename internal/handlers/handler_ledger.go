package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
	"github.com/openbooks-app/openbooks_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for account ledger views.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes nests the ledger view under the accounts group.
func registerLedgerRoutes(accounts *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	accounts.GET("/:id/ledger", h.getAccountLedger)
}

// getAccountLedger godoc
// @Summary Get the running-balance ledger view of an account
// @Description Materializes the ledger rows of one account over a date range. Only POSTED entries contribute; the balance starts at zero at the beginning of the range.
// @Tags ledger
// @Produce json
// @Param id path string true "Account ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute ledger"
// @Router /accounts/{id}/ledger [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	to := params.To
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if !params.From.IsZero() && params.From.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must not be after to"})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), accountID, params.From, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute account ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, ledger)
}
