package payout

import (
	"time"

	"taskhive/internal/models"
)

// ProcessedWeek records one successfully paid task-week.
type ProcessedWeek struct {
	TaskID        uint      `json:"task_id"`
	WorkerID      uint      `json:"worker_id"`
	WeekStart     time.Time `json:"week_start"`
	Hours         float64   `json:"hours"`
	Amount        float64   `json:"amount"`
	TotalCharged  float64   `json:"total_charged"`
	PaymentID     uint      `json:"payment_id"`
	TransactionID uint      `json:"transaction_id"`
}

// WeekError records a task-week that failed without aborting the batch.
type WeekError struct {
	TaskID    uint      `json:"task_id"`
	WeekStart time.Time `json:"week_start"`
	Error     string    `json:"error"`
}

// Result reports partial success: the caller decides how to surface the
// error set. Success is false when any week failed.
type Result struct {
	Success   bool            `json:"success"`
	Processed []ProcessedWeek `json:"processed"`
	Errors    []WeekError     `json:"errors"`
}

// reportGroup is one task-week's worth of approved reports.
type reportGroup struct {
	weekStart time.Time
	reports   []models.TimeReport
}

func (g reportGroup) totalHours() float64 {
	var sum float64
	for _, r := range g.reports {
		sum += r.Hours
	}
	return sum
}
