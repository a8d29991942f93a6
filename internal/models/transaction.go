package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeWeeklyPayout = "WEEKLY_PAYOUT"
	TransactionTypeRefund       = "REFUND"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type Transaction struct {
	ID              uint    `gorm:"primarykey"`
	Type            string  `gorm:"not null"`
	SenderID        uint    `gorm:"not null"`
	ReceiverID      uint    `gorm:"not null"`
	Amount          float64 `gorm:"not null"`
	Fee             float64 `gorm:"default:0"`
	Status          string  `gorm:"not null;default:'pending'"`
	Description     string
	Reference       string `gorm:"uniqueIndex"` // internal reference
	PaymentIntentID string // processor charge reference
	TransferID      string // processor transfer reference
	Currency        string `gorm:"default:'USD'"`
	Metadata        JSON   `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
