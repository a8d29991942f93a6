package models

// BadgeTier is a derived reputation rank for workers. It is recomputed on
// demand from aggregate stats, never stored.
type BadgeTier string

const (
	BadgeStarter      BadgeTier = "STARTER"
	BadgeVerified     BadgeTier = "VERIFIED"
	BadgeProfessional BadgeTier = "PROFESSIONAL"
	BadgeExpert       BadgeTier = "EXPERT"
	BadgeElite        BadgeTier = "ELITE"
)

// BadgeThresholds are the minimums a worker must meet on every dimension to
// qualify for a tier.
type BadgeThresholds struct {
	MinTasks   int     `json:"min_tasks"`
	MinRating  float64 `json:"min_rating"`
	MinReviews int     `json:"min_reviews"`
}

// BadgeTierTable lists tiers from highest to lowest. Thresholds increase
// strictly on all three dimensions from tier to tier.
var BadgeTierTable = []struct {
	Tier       BadgeTier
	Thresholds BadgeThresholds
}{
	{BadgeElite, BadgeThresholds{MinTasks: 500, MinRating: 4.8, MinReviews: 100}},
	{BadgeExpert, BadgeThresholds{MinTasks: 200, MinRating: 4.5, MinReviews: 50}},
	{BadgeProfessional, BadgeThresholds{MinTasks: 50, MinRating: 4.0, MinReviews: 10}},
	{BadgeVerified, BadgeThresholds{MinTasks: 10, MinRating: 3.5, MinReviews: 3}},
}
