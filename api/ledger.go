package api

import (
	"pocketledger/middleware"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
)

// LedgerHandler ledger endpoints
type LedgerHandler struct {
	ledgers *service.LedgerService
}

// NewLedgerHandler creates the ledger handler
func NewLedgerHandler(ledgers *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgers: ledgers}
}

// CreateLedgerRequest create body
type CreateLedgerRequest struct {
	Name string `json:"name" binding:"required" example:"Home"`
}

// List returns the caller's ledgers
// @Summary List ledgers
// @Tags ledgers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Ledger
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/ledgers [get]
func (h *LedgerHandler) List(c *gin.Context) {
	ledgers, err := h.ledgers.List(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, ledgers)
}

// Create adds a ledger
// @Summary Create ledger
// @Description Names are unique per user
// @Tags ledgers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLedgerRequest true "ledger"
// @Success 200 {object} models.Ledger
// @Failure 400 {object} ErrorResponse "empty or duplicate name"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/ledgers [post]
func (h *LedgerHandler) Create(c *gin.Context) {
	var req CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "ledger name is required"))
		return
	}

	ledger, err := h.ledgers.Create(c.Request.Context(), middleware.GetCurrentUserID(c), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, ledger)
}
