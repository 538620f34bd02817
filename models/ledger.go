package models

import (
	"time"
)

// DefaultLedgerName is the ledger legacy ledger-less transactions are moved into.
const DefaultLedgerName = "General"

// Ledger a named group of transactions owned by one user
type Ledger struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_ledgers_user_name"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_ledgers_user_name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Ledger) TableName() string {
	return "ledgers"
}

// OwnerID implements Owned.
func (l Ledger) OwnerID() uint {
	return l.UserID
}
