package models

import (
	"gorm.io/gorm"
)

// Support ticket statuses
const (
	TicketStatusOpen     = "open"
	TicketStatusAnswered = "answered"
	TicketStatusClosed   = "closed"
)

type SupportTicket struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Subject string `gorm:"not null"`
	Message string `gorm:"not null"`
	Reply   string
	Status  string `gorm:"not null;default:'open'"`
}
