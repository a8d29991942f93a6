package models

import (
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTimeReportApproved = "time_report_approved"
	NotificationTimeReportRejected = "time_report_rejected"
	NotificationTimeReportDisputed = "time_report_disputed"
	NotificationPaymentCreated     = "payment_created"
	NotificationTaskAssigned       = "task_assigned"
	NotificationReviewReceived     = "review_received"
	NotificationTicketAnswered     = "ticket_answered"
)

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Type    string `gorm:"not null"`
	Message string `gorm:"not null"`
	TaskID  *uint
	Read    bool `gorm:"default:false"`
}
