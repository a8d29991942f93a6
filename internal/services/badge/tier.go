// Package badge derives a worker's reputation tier from aggregate stats.
package badge

import (
	"taskhive/internal/models"
)

// Tier returns the highest badge tier for which the worker meets all three
// thresholds. Tiers are checked from ELITE down; STARTER is the floor.
func Tier(taskCount int, avgRating float64, reviewCount int) models.BadgeTier {
	for _, entry := range models.BadgeTierTable {
		t := entry.Thresholds
		if taskCount >= t.MinTasks && avgRating >= t.MinRating && reviewCount >= t.MinReviews {
			return entry.Tier
		}
	}
	return models.BadgeStarter
}

// TierForStats is a convenience wrapper over Tier.
func TierForStats(stats models.WorkerStats) models.BadgeTier {
	return Tier(stats.CompletedTasks, stats.AverageRating, stats.ReviewCount)
}
