package models

import (
	"gorm.io/gorm"
)

// Review is a client's rating of a worker after task completion.
// One review per (task, reviewer).
type Review struct {
	gorm.Model
	TaskID     uint `gorm:"not null;uniqueIndex:idx_task_reviewer"`
	ReviewerID uint `gorm:"not null;uniqueIndex:idx_task_reviewer"`
	RevieweeID uint `gorm:"not null;index"`
	Rating     int  `gorm:"not null"`
	Comment    string
}

// WorkerStats are the aggregates the badge tier is derived from.
type WorkerStats struct {
	CompletedTasks int
	AverageRating  float64
	ReviewCount    int
}
