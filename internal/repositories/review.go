package repositories

import (
	"taskhive/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	ExistsForTaskReviewer(taskID, reviewerID uint) (bool, error)
	ListByReviewee(revieweeID uint) ([]models.Review, error)
	// AggregateForReviewee returns review count and average rating.
	AggregateForReviewee(revieweeID uint) (int64, float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) ExistsForTaskReviewer(taskID, reviewerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("task_id = ? AND reviewer_id = ?", taskID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByReviewee(revieweeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("reviewee_id = ?", revieweeID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) AggregateForReviewee(revieweeID uint) (int64, float64, error) {
	var result struct {
		Count int64
		Avg   float64
	}
	err := r.db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("reviewee_id = ?", revieweeID).
		Scan(&result).Error
	return result.Count, result.Avg, err
}
