package models

import (
	"time"

	"gorm.io/gorm"
)

// WeeklyPayment is a computed payment for one approved time-report-week.
// Immutable once a transaction is linked.
type WeeklyPayment struct {
	gorm.Model
	TaskID             uint      `gorm:"not null;index"`
	TimeReportID       uint      `gorm:"not null;uniqueIndex"`
	WeekStart          time.Time `gorm:"type:date;not null"`
	Amount             float64   `gorm:"not null"`
	PlatformFee        float64   `gorm:"not null"`
	TrustAndSupportFee float64   `gorm:"not null"`
	StripeFee          float64   `gorm:"not null"`
	TotalAmount        float64   `gorm:"not null"`
	TransactionID      *uint     `gorm:"index"`
}
