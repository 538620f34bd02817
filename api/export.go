package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{"ID", "Date", "Type", "Description", "Category", "Amount", "Original Amount", "Division Factor", "Installment"}

// ExportHandler transaction export
type ExportHandler struct {
	transactions *service.TransactionService
}

// NewExportHandler creates the export handler
func NewExportHandler(transactions *service.TransactionService) *ExportHandler {
	return &ExportHandler{transactions: transactions}
}

// Export downloads the transactions of one ledger
// @Summary Export transactions
// @Description CSV (UTF-8 with BOM) or XLSX
// @Tags export
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param ledgerId query int true "ledger id"
// @Param format query string false "csv or xlsx" default(csv)
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "ledger not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		BadRequest(c, "format must be csv or xlsx")
		return
	}
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

	filename := fmt.Sprintf("transactions_ledger%d.%s", ledgerID, format)
	if format == "xlsx" {
		h.writeXLSX(c, filename, txs)
		return
	}
	h.writeCSV(c, filename, txs)
}

func exportRow(tx models.Transaction) []string {
	original := ""
	if tx.OriginalAmount != nil {
		original = strconv.FormatFloat(*tx.OriginalAmount, 'f', 2, 64)
	}
	installment := ""
	if tx.IsInstallment && tx.TotalInstallments != nil {
		paid := 0
		if tx.PaidInstallments != nil {
			paid = *tx.PaidInstallments
		}
		installment = fmt.Sprintf("%d/%d", paid, *tx.TotalInstallments)
	}
	return []string{
		strconv.FormatUint(uint64(tx.ID), 10),
		tx.Date.UTC().Format(service.DayLayout),
		tx.Type,
		tx.Description,
		tx.Category,
		strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		original,
		strconv.FormatFloat(tx.DivisionFactor, 'f', -1, 64),
		installment,
	}
}

func (h *ExportHandler) writeCSV(c *gin.Context, filename string, txs []models.Transaction) {
	buf := new(bytes.Buffer)
	// BOM so spreadsheet apps detect UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		RespondError(c, err)
		return
	}
	for _, tx := range txs {
		if err := writer.Write(exportRow(tx)); err != nil {
			RespondError(c, err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) writeXLSX(c *gin.Context, filename string, txs []models.Transaction) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		RespondError(c, err)
		return
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	dataStyle, _ := f.NewStyle(&excelize.Style{Border: border})

	_ = f.SetColWidth(sheetName, "A", "B", 12)
	_ = f.SetColWidth(sheetName, "D", "D", 30)
	_ = f.SetColWidth(sheetName, "E", "I", 16)

	if err := f.SetSheetRow(sheetName, "A1", &exportHeaders); err != nil {
		RespondError(c, err)
		return
	}
	_ = f.SetCellStyle(sheetName, "A1", "I1", headerStyle)

	for i, tx := range txs {
		row := i + 2
		values := []interface{}{tx.ID, tx.Date.UTC().Format(service.DayLayout), tx.Type, tx.Description, tx.Category, tx.Amount}
		if tx.OriginalAmount != nil {
			values = append(values, *tx.OriginalAmount)
		} else {
			values = append(values, nil)
		}
		values = append(values, tx.DivisionFactor, exportRow(tx)[8])

		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			RespondError(c, err)
			return
		}
		_ = f.SetCellStyle(sheetName, cell, fmt.Sprintf("I%d", row), dataStyle)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		RespondError(c, err)
		return
	}
}
