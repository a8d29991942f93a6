package models

import (
	"time"

	"gorm.io/gorm"
)

// Time report statuses. PENDING is the only entry state; APPROVED and
// REJECTED are terminal except when reached through dispute resolution.
const (
	TimeReportPending  = "PENDING"
	TimeReportApproved = "APPROVED"
	TimeReportRejected = "REJECTED"
	TimeReportDisputed = "DISPUTED"
)

// TimeReport is a worker's weekly claim of hours worked on a task.
// Reports are never deleted, only status-transitioned.
type TimeReport struct {
	gorm.Model
	TaskID       uint      `gorm:"not null;uniqueIndex:idx_task_worker_week"`
	WorkerID     uint      `gorm:"not null;uniqueIndex:idx_task_worker_week"`
	WeekStart    time.Time `gorm:"type:date;not null;uniqueIndex:idx_task_worker_week"`
	Hours        float64   `gorm:"not null"`
	Status       string    `gorm:"not null;default:'PENDING'"`
	ApprovedBy   *uint
	ApprovedAt   *time.Time
	RejectReason string
}

// Decided reports whether an approval decision has been recorded.
func (r *TimeReport) Decided() bool {
	return r.ApprovedBy != nil
}

// WeekStartOf normalizes t to the Monday of its week, at midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
