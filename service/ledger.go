package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pocketledger/models"

	"gorm.io/gorm"
)

// LedgerService manages ledgers of a single owner at a time.
type LedgerService struct {
	db *gorm.DB
}

// NewLedgerService creates the ledger service.
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Create adds a ledger for userID. Names are unique per owner.
func (s *LedgerService) Create(ctx context.Context, userID uint, name string) (*models.Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLedgerNameRequired
	}
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Ledger{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check ledger name: %w", err)
	}
	if count > 0 {
		return nil, ErrLedgerExists
	}

	ledger := models.Ledger{Name: name, UserID: userID}
	if err := db.Create(&ledger).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLedgerExists
		}
		return nil, fmt.Errorf("create ledger: %w", err)
	}
	return &ledger, nil
}

// List returns the owner's ledgers, oldest first.
func (s *LedgerService) List(ctx context.Context, userID uint) ([]models.Ledger, error) {
	ledgers := []models.Ledger{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&ledgers).Error; err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	return ledgers, nil
}

// Get returns the ledger when it belongs to userID. Foreign ledgers look unknown.
func (s *LedgerService) Get(ctx context.Context, userID, id uint) (*models.Ledger, error) {
	if id == 0 {
		return nil, ErrLedgerRequired
	}
	var ledger models.Ledger
	err := s.db.WithContext(ctx).First(&ledger, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLedgerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	if !models.BelongsTo(ledger, userID) {
		return nil, ErrLedgerNotFound
	}
	return &ledger, nil
}
