package models

import (
	"time"
)

// AnalysisHistory a stored AI analysis result
type AnalysisHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	LedgerID  uint      `json:"ledgerId" gorm:"index;not null;default:0"` // 0: all ledgers
	StartDate string    `json:"startDate" gorm:"size:10"`                 // YYYY-MM-DD, empty when unbounded
	EndDate   string    `json:"endDate" gorm:"size:10"`
	Provider  string    `json:"provider" gorm:"size:50"`
	Result    string    `json:"analysis" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName sets the table name
func (AnalysisHistory) TableName() string {
	return "analysis_histories"
}

// OwnerID implements Owned.
func (a AnalysisHistory) OwnerID() uint {
	return a.UserID
}
