package api

import (
	"pocketledger/middleware"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
)

// Summary totals for the caller
// @Summary Summary
// @Description Income, undivided expenses, balance and expenses per category. Dates are inclusive UTC days.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param ledgerId query int false "limit to one ledger"
// @Success 200 {object} service.Summary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	r, err := service.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		RespondError(c, err)
		return
	}
	ledgerID, ok := queryLedgerID(c)
	if !ok {
		return
	}

	summary, err := h.transactions.Summarize(c.Request.Context(), middleware.GetCurrentUserID(c), r, ledgerID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, summary)
}
