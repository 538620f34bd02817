package api

import (
	"bytes"
	"errors"
	"io"

	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// AIAnalysisHandler AI analysis and its history
type AIAnalysisHandler struct {
	analysis *service.AnalysisService
	md       goldmark.Markdown
}

// NewAIAnalysisHandler creates the analysis handler
func NewAIAnalysisHandler(analysis *service.AnalysisService) *AIAnalysisHandler {
	return &AIAnalysisHandler{
		analysis: analysis,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// AnalysisRequest all fields optional
type AnalysisRequest struct {
	StartDate string `json:"startDate" example:"2024-01-01"`
	EndDate   string `json:"endDate" example:"2024-12-31"`
	LedgerID  uint   `json:"ledgerId" example:"1"`
}

// AnalysisResponse analyzer markdown, verbatim
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// AnalysisDetail stored analysis plus its rendered HTML
type AnalysisDetail struct {
	models.AnalysisHistory
	HTML string `json:"html"`
}

// Analyze asks the analyzer for a report on recent transactions
// @Summary AI analysis
// @Description Analyzes up to the 100 most recent matching transactions. At least 5 are needed.
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AnalysisRequest false "filters"
// @Success 200 {object} AnalysisResponse
// @Failure 400 {object} ErrorResponse "insufficient data or bad dates"
// @Failure 503 {object} ErrorResponse "analyzer not configured"
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions/analyze-ai [post]
func (h *AIAnalysisHandler) Analyze(c *gin.Context) {
	if !h.analysis.Available() {
		RespondError(c, service.ErrAnalyzerUnavailable)
		return
	}

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}
	r, err := service.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		RespondError(c, err)
		return
	}

	result, err := h.analysis.PrepareAnalysis(c.Request.Context(), middleware.GetCurrentUserID(c), req.LedgerID, r)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, AnalysisResponse{Analysis: result.Result})
}

// ListHistory lists stored analyses
// @Summary Analysis history
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AnalysisHistory
// @Failure 500 {object} ErrorResponse
// @Router /api/analyses [get]
func (h *AIAnalysisHandler) ListHistory(c *gin.Context) {
	list, err := h.analysis.History(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// GetHistory returns one analysis with its markdown rendered to HTML
// @Summary Analysis detail
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param id path int true "analysis id"
// @Success 200 {object} AnalysisDetail
// @Failure 401 {object} ErrorResponse "not authorized"
// @Failure 404 {object} ErrorResponse "analysis not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/analyses/{id} [get]
func (h *AIAnalysisHandler) GetHistory(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrAnalysisNotFound.Message())
	if !ok {
		return
	}

	his, err := h.analysis.GetHistory(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(his.Result), &buf); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, AnalysisDetail{AnalysisHistory: *his, HTML: buf.String()})
}

// DeleteHistory removes a stored analysis
// @Summary Delete analysis
// @Tags analysis
// @Security BearerAuth
// @Param id path int true "analysis id"
// @Success 204
// @Failure 401 {object} ErrorResponse "not authorized"
// @Failure 404 {object} ErrorResponse "analysis not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/analyses/{id} [delete]
func (h *AIAnalysisHandler) DeleteHistory(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrAnalysisNotFound.Message())
	if !ok {
		return
	}

	if err := h.analysis.DeleteHistory(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		RespondError(c, err)
		return
	}
	NoContent(c)
}
