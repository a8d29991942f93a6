package review

import (
	"context"
	"fmt"

	"taskhive/internal/errors"
	"taskhive/internal/models"
	"taskhive/internal/repositories"
	"taskhive/internal/services/badge"
)

// Notifier delivers a notification to a user.
type Notifier interface {
	Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error
}

// BadgeCache caches derived tiers. Satisfied by cache.CacheService.
type BadgeCache interface {
	GetBadgeTier(ctx context.Context, workerID uint) (models.BadgeTier, bool, error)
	CacheBadgeTier(ctx context.Context, workerID uint, tier models.BadgeTier) error
	InvalidateBadgeTier(ctx context.Context, workerID uint) error
}

type Service struct {
	reviews  repositories.ReviewRepository
	tasks    repositories.TaskRepository
	notifier Notifier
	cache    BadgeCache
}

func NewService(reviews repositories.ReviewRepository, tasks repositories.TaskRepository, notifier Notifier, cache BadgeCache) *Service {
	return &Service{reviews: reviews, tasks: tasks, notifier: notifier, cache: cache}
}

type CreateInput struct {
	TaskID  uint
	Rating  int
	Comment string
}

// Create records the client's review of the worker on a completed task.
func (s *Service) Create(ctx context.Context, p models.Principal, input CreateInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.NewInvalidArgument("rating must be between 1 and 5, got %d", input.Rating)
	}

	task, err := s.tasks.FindByID(input.TaskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	if task.ClientID != p.UserID {
		return nil, errors.NewForbidden("only the task's client can review the worker")
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, errors.NewInvalidState(task.Status)
	}
	if task.WorkerID == nil {
		return nil, errors.NewInvalidArgument("task has no assigned worker")
	}

	exists, err := s.reviews.ExistsForTaskReviewer(task.ID, p.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewInvalidState("reviewed")
	}

	review := &models.Review{
		TaskID:     task.ID,
		ReviewerID: p.UserID,
		RevieweeID: *task.WorkerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateBadgeTier(ctx, *task.WorkerID)
	}
	if s.notifier != nil {
		msg := fmt.Sprintf("You received a %d-star review on %q", input.Rating, task.Title)
		_ = s.notifier.Create(ctx, *task.WorkerID, models.NotificationReviewReceived, msg, &task.ID)
	}
	return review, nil
}

// ListForWorker returns a worker's reviews.
func (s *Service) ListForWorker(ctx context.Context, workerID uint) ([]models.Review, error) {
	return s.reviews.ListByReviewee(workerID)
}

// WorkerStats aggregates the counters the badge tier derives from.
func (s *Service) WorkerStats(ctx context.Context, workerID uint) (models.WorkerStats, error) {
	reviewCount, avgRating, err := s.reviews.AggregateForReviewee(workerID)
	if err != nil {
		return models.WorkerStats{}, err
	}
	taskCount, err := s.tasks.CountCompletedByWorker(workerID)
	if err != nil {
		return models.WorkerStats{}, err
	}
	return models.WorkerStats{
		CompletedTasks: int(taskCount),
		AverageRating:  avgRating,
		ReviewCount:    int(reviewCount),
	}, nil
}

// WorkerBadge computes the worker's current badge tier, with a short-lived
// cache in front of the aggregates.
func (s *Service) WorkerBadge(ctx context.Context, workerID uint) (models.BadgeTier, models.WorkerStats, error) {
	stats, err := s.WorkerStats(ctx, workerID)
	if err != nil {
		return "", models.WorkerStats{}, err
	}

	if s.cache != nil {
		if tier, found, err := s.cache.GetBadgeTier(ctx, workerID); err == nil && found {
			return tier, stats, nil
		}
	}

	tier := badge.TierForStats(stats)
	if s.cache != nil {
		_ = s.cache.CacheBadgeTier(ctx, workerID, tier)
	}
	return tier, stats, nil
}
