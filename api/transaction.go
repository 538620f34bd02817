package api

import (
	"pocketledger/middleware"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler transaction endpoints
type TransactionHandler struct {
	transactions *service.TransactionService
}

// NewTransactionHandler creates the transaction handler
func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// CreateTransactionRequest documents the create body
type CreateTransactionRequest struct {
	LedgerID          uint     `json:"ledgerId" example:"1"`
	Type              string   `json:"type" enums:"income,expense" example:"expense"`
	Description       string   `json:"description" example:"TV"`
	Amount            float64  `json:"amount" example:"100"`
	Category          string   `json:"category" example:"Tech"`
	Date              string   `json:"date" example:"2024-03-01"`
	OriginalAmount    *float64 `json:"originalAmount" example:"300"`
	DivisionFactor    *float64 `json:"divisionFactor" example:"3"`
	IsInstallment     bool     `json:"isInstallment"`
	TotalInstallments *int     `json:"totalInstallments" example:"3"`
	PaidInstallments  *int     `json:"paidInstallments" example:"1"`
}

// List returns the transactions of one ledger
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param ledgerId query int true "ledger id"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} ErrorResponse "ledgerId is required"
// @Failure 404 {object} ErrorResponse "ledger not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	ledgerID, ok := queryLedgerID(c)
	if !ok {
		return
	}
	r, err := service.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		RespondError(c, err)
		return
	}

	txs, err := h.transactions.List(c.Request.Context(), middleware.GetCurrentUserID(c), ledgerID, r)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, txs)
}

// Create records a transaction
// @Summary Create transaction
// @Description Amounts are stored as given. userId in the body is ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "transaction"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "ledger not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "cannot read request body")
		return
	}

	tx, err := h.transactions.Create(c.Request.Context(), middleware.GetCurrentUserID(c), body)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, tx)
}

// Update changes a transaction and recomputes its amounts
// @Summary Update transaction
// @Description amount is the undivided total. Expenses store amount/divisionFactor and keep the total in originalAmount.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Param request body service.UpdateFields true "fields"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "not authorized"
// @Failure 404 {object} ErrorResponse "transaction not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTransactionNotFound.Message())
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "cannot read request body")
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	tx, err := h.transactions.Update(c.Request.Context(), middleware.GetCurrentUserID(c), id, body)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, tx)
}

// Delete removes a transaction
// @Summary Delete transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Success 204
// @Failure 401 {object} ErrorResponse "not authorized"
// @Failure 404 {object} ErrorResponse "transaction not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTransactionNotFound.Message())
	if !ok {
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		RespondError(c, err)
		return
	}
	NoContent(c)
}
