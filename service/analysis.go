package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pocketledger/logger"
	"pocketledger/models"

	"gorm.io/gorm"
)

const (
	analysisMaxTransactions = 100
	analysisMinTransactions = 5
)

// AnalysisItem the reduced view of a transaction sent to the analyzer.
type AnalysisItem struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ProjectForAnalysis maps transactions to analysis items using undivided amounts.
func ProjectForAnalysis(txs []models.Transaction) []AnalysisItem {
	items := make([]AnalysisItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, AnalysisItem{
			Type:        tx.Type,
			Amount:      tx.UndividedAmount(),
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date.UTC().Format(DayLayout),
		})
	}
	return items
}

const analysisInstructions = `You are a personal finance assistant. Analyze the transactions below and answer in Markdown with exactly these three sections:

## Activity summary
One short paragraph describing income and spending over the period.

## Observations
A bulleted list of notable patterns, unusually large expenses and category trends.

## Tips
A numbered list of concrete, actionable tips to improve the user's finances.

Amounts are undivided totals. Transactions as JSON:
`

// BuildAnalysisPrompt renders the fixed instructions followed by the JSON items.
func BuildAnalysisPrompt(items []AnalysisItem) (string, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(analysisInstructions)
	sb.Write(data)
	sb.WriteString("\n")
	return sb.String(), nil
}

// AnalysisService runs AI analyses over a user's transactions and keeps their history.
type AnalysisService struct {
	db       *gorm.DB
	ledgers  *LedgerService
	analyzer Analyzer
	timeout  time.Duration
	log      *logger.Logger
}

// NewAnalysisService creates the service. A nil analyzer makes every analysis
// fail with ErrAnalyzerUnavailable; timeout 0 means no deadline.
func NewAnalysisService(db *gorm.DB, ledgers *LedgerService, analyzer Analyzer, timeout time.Duration, log *logger.Logger) *AnalysisService {
	if log == nil {
		log = logger.Discard()
	}
	return &AnalysisService{
		db:       db,
		ledgers:  ledgers,
		analyzer: analyzer,
		timeout:  timeout,
		log:      log.WithComponent("analysis"),
	}
}

// Available reports whether an analyzer is configured.
func (s *AnalysisService) Available() bool {
	return s.analyzer != nil
}

// PrepareAnalysis analyzes up to the 100 most recent matching transactions and
// stores the result. The analyzer text is returned verbatim.
func (s *AnalysisService) PrepareAnalysis(ctx context.Context, userID, ledgerID uint, r DateRange) (*models.AnalysisHistory, error) {
	if !s.Available() {
		return nil, ErrAnalyzerUnavailable
	}
	if ledgerID != 0 {
		if _, err := s.ledgers.Get(ctx, userID, ledgerID); err != nil {
			return nil, err
		}
	}

	var txs []models.Transaction
	if err := scopeTransactions(s.db.WithContext(ctx), userID, ledgerID, r).
		Order("date DESC, id DESC").
		Limit(analysisMaxTransactions).
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if len(txs) < analysisMinTransactions {
		return nil, ErrNotEnoughData
	}

	prompt, err := BuildAnalysisPrompt(ProjectForAnalysis(txs))
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.analyzer.Analyze(callCtx, prompt)
	if err != nil {
		return nil, &Error{Kind: ErrUpstream, Msg: "server error", Cause: err}
	}

	start, end := r.Bounds()
	history := models.AnalysisHistory{
		UserID:    userID,
		LedgerID:  ledgerID,
		StartDate: start,
		EndDate:   end,
		Provider:  s.analyzer.Provider(),
		Result:    text,
	}
	if err := s.db.WithContext(ctx).Create(&history).Error; err != nil {
		s.log.Warn("store analysis failed", "user_id", userID, "error", err)
	}
	return &history, nil
}

// History lists the owner's stored analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, userID uint) ([]models.AnalysisHistory, error) {
	list := []models.AnalysisHistory{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return list, nil
}

// GetHistory returns one stored analysis owned by userID.
func (s *AnalysisService) GetHistory(ctx context.Context, userID, id uint) (*models.AnalysisHistory, error) {
	var h models.AnalysisHistory
	err := s.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find analysis: %w", err)
	}
	if !models.BelongsTo(h, userID) {
		return nil, ErrNotAuthorized
	}
	return &h, nil
}

// DeleteHistory removes a stored analysis.
func (s *AnalysisService) DeleteHistory(ctx context.Context, userID, id uint) error {
	if _, err := s.GetHistory(ctx, userID, id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.AnalysisHistory{})
	if res.Error != nil {
		return fmt.Errorf("delete analysis: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}
