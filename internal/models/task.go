package models

import (
	"gorm.io/gorm"
)

// Task statuses
const (
	TaskStatusOpen       = "open"
	TaskStatusAssigned   = "assigned"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

type Task struct {
	gorm.Model
	ClientID    uint   `gorm:"not null;index"`
	WorkerID    *uint  `gorm:"index"`
	Title       string `gorm:"not null"`
	Description string
	HourlyRate  float64 `gorm:"not null"`
	Status      string  `gorm:"not null;default:'open'"`
}

// HasWorker reports whether a worker has been assigned.
func (t *Task) HasWorker() bool {
	return t.WorkerID != nil
}
