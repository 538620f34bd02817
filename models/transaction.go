package models

import (
	"time"
)

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction an income or expense entry inside a ledger.
// For expenses Amount is the settled per-period value and OriginalAmount the undivided total.
type Transaction struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"userId" gorm:"index;not null"`
	LedgerID          uint      `json:"ledgerId" gorm:"index;not null;default:0"`
	Type              string    `json:"type" gorm:"size:10;not null"`
	Description       string    `json:"description" gorm:"size:255;not null"`
	Amount            float64   `json:"amount" gorm:"not null"`
	Category          string    `json:"category" gorm:"size:100;not null;index"`
	Date              time.Time `json:"date" gorm:"index;not null"`
	OriginalAmount    *float64  `json:"originalAmount,omitempty"`
	DivisionFactor    float64   `json:"divisionFactor" gorm:"not null;default:1"`
	IsInstallment     bool      `json:"isInstallment" gorm:"not null;default:false"`
	TotalInstallments *int      `json:"totalInstallments,omitempty"`
	PaidInstallments  *int      `json:"paidInstallments,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	User              User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Transaction) TableName() string {
	return "transactions"
}

// OwnerID implements Owned.
func (t Transaction) OwnerID() uint {
	return t.UserID
}

// UndividedAmount is OriginalAmount when present, otherwise Amount.
func (t Transaction) UndividedAmount() float64 {
	if t.OriginalAmount != nil {
		return *t.OriginalAmount
	}
	return t.Amount
}

// IsValidType reports whether s is income or expense.
func IsValidType(s string) bool {
	return s == TypeIncome || s == TypeExpense
}
