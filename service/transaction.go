package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pocketledger/events"
	"pocketledger/logger"
	"pocketledger/models"

	"gorm.io/gorm"
)

// CreateInput body of a create request. Owner comes from the session, never the body.
type CreateInput struct {
	LedgerID          uint     `json:"ledgerId"`
	Type              string   `json:"type"`
	Description       string   `json:"description"`
	Amount            float64  `json:"amount"`
	Category          string   `json:"category"`
	Date              string   `json:"date"`
	OriginalAmount    *float64 `json:"originalAmount"`
	DivisionFactor    *float64 `json:"divisionFactor"`
	IsInstallment     bool     `json:"isInstallment"`
	TotalInstallments *int     `json:"totalInstallments"`
	PaidInstallments  *int     `json:"paidInstallments"`
}

// TransactionService stores transactions scoped to an owner and a ledger.
type TransactionService struct {
	db        *gorm.DB
	ledgers   *LedgerService
	validator *TransactionValidator
	events    events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewTransactionService creates the service. A nil publisher drops events.
func NewTransactionService(db *gorm.DB, ledgers *LedgerService, validator *TransactionValidator, publisher events.Publisher, log *logger.Logger) *TransactionService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &TransactionService{
		db:        db,
		ledgers:   ledgers,
		validator: validator,
		events:    publisher,
		log:       log.WithComponent("transactions"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func scopeTransactions(db *gorm.DB, userID, ledgerID uint, r DateRange) *gorm.DB {
	q := db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if ledgerID != 0 {
		q = q.Where("ledger_id = ?", ledgerID)
	}
	if r.Start != nil {
		q = q.Where("date >= ?", *r.Start)
	}
	if r.End != nil {
		q = q.Where("date <= ?", *r.End)
	}
	return q
}

// List returns the owner's transactions in ledgerID, newest first.
func (s *TransactionService) List(ctx context.Context, userID, ledgerID uint, r DateRange) ([]models.Transaction, error) {
	if ledgerID == 0 {
		return nil, ErrLedgerRequired
	}
	if _, err := s.ledgers.Get(ctx, userID, ledgerID); err != nil {
		return nil, err
	}

	txs := []models.Transaction{}
	if err := scopeTransactions(s.db.WithContext(ctx), userID, ledgerID, r).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Create validates payload and stores a new transaction in one of the owner's ledgers.
// Amounts are stored as given.
func (s *TransactionService) Create(ctx context.Context, userID uint, payload []byte) (*models.Transaction, error) {
	if err := s.validator.ValidateCreate(payload); err != nil {
		return nil, err
	}
	var in CreateInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, Invalid("request body is not valid JSON")
	}
	if in.LedgerID == 0 {
		return nil, ErrLedgerRequired
	}

	date := s.now()
	if strings.TrimSpace(in.Date) != "" {
		d, err := parseTimestamp(in.Date)
		if err != nil {
			return nil, Invalid("date must be YYYY-MM-DD or RFC 3339")
		}
		date = d
	}

	ledger, err := s.ledgers.Get(ctx, userID, in.LedgerID)
	if err != nil {
		return nil, err
	}

	factor := 1.0
	if in.DivisionFactor != nil {
		factor = *in.DivisionFactor
	}
	tx := models.Transaction{
		UserID:            userID,
		LedgerID:          ledger.ID,
		Type:              in.Type,
		Description:       strings.TrimSpace(in.Description),
		Amount:            in.Amount,
		Category:          strings.TrimSpace(in.Category),
		Date:              date,
		OriginalAmount:    in.OriginalAmount,
		DivisionFactor:    factor,
		IsInstallment:     in.IsInstallment,
		TotalInstallments: in.TotalInstallments,
		PaidInstallments:  in.PaidInstallments,
	}
	if !tx.IsInstallment {
		tx.TotalInstallments = nil
		tx.PaidInstallments = nil
	}
	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, events.TransactionCreated, tx)
	return &tx, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(DayLayout, s)
}

// owned loads transaction id and checks it belongs to userID.
func (s *TransactionService) owned(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if !models.BelongsTo(tx, userID) {
		return nil, ErrNotAuthorized
	}
	return &tx, nil
}

// Update applies a partial update and recomputes the derived amounts (see Normalize).
func (s *TransactionService) Update(ctx context.Context, userID, id uint, payload []byte) (*models.Transaction, error) {
	if err := s.validator.ValidateUpdate(payload); err != nil {
		return nil, err
	}
	var in UpdateFields
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, Invalid("request body is not valid JSON")
	}

	stored, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	next, err := Normalize(*stored, in)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"description":        next.Description,
			"category":           next.Category,
			"amount":             next.Amount,
			"original_amount":    next.OriginalAmount,
			"division_factor":    next.DivisionFactor,
			"is_installment":     next.IsInstallment,
			"total_installments": next.TotalInstallments,
			"paid_installments":  next.PaidInstallments,
		}).Error; err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	var updated models.Transaction
	err = db.Where("id = ? AND user_id = ?", id, userID).First(&updated).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reload transaction: %w", err)
	}

	s.publish(ctx, events.TransactionUpdated, updated)
	return &updated, nil
}

// Delete removes a transaction permanently.
func (s *TransactionService) Delete(ctx context.Context, userID, id uint) error {
	stored, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	s.publish(ctx, events.TransactionDeleted, *stored)
	return nil
}

// Summarize aggregates the owner's transactions in r, optionally limited to one ledger.
func (s *TransactionService) Summarize(ctx context.Context, userID uint, r DateRange, ledgerID uint) (Summary, error) {
	if ledgerID != 0 {
		if _, err := s.ledgers.Get(ctx, userID, ledgerID); err != nil {
			return Summary{}, err
		}
	}

	var txs []models.Transaction
	if err := scopeTransactions(s.db.WithContext(ctx), userID, ledgerID, r).Find(&txs).Error; err != nil {
		return Summary{}, fmt.Errorf("load transactions: %w", err)
	}
	return Summarize(txs), nil
}

func (s *TransactionService) publish(ctx context.Context, name string, tx models.Transaction) {
	e := events.NewEvent(name, tx.ID, tx.LedgerID, tx.UserID)
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("publish event failed", "event", name, "transaction_id", tx.ID, "error", err)
	}
}
