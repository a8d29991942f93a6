// Package notification persists notifications and fans them out over
// Redis pub/sub.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"taskhive/internal/models"
	"taskhive/internal/repositories"
)

// Broker publishes a payload on a pub/sub channel.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Service struct {
	repo   repositories.NotificationRepository
	broker Broker
}

// NewService creates a notification service. A nil broker disables pub/sub
// fan-out; the row is still persisted.
func NewService(repo repositories.NotificationRepository, broker Broker) *Service {
	return &Service{repo: repo, broker: broker}
}

// Create records a notification for the user and publishes it. A publish
// failure is logged, not returned: delivery to connected clients is best
// effort, the persisted row is the source of truth.
func (s *Service) Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error {
	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		TaskID:  taskID,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}

	if s.broker != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			channel := fmt.Sprintf("notifications:%d", userID)
			if err := s.broker.Publish(ctx, channel, payload); err != nil {
				log.Printf("notification publish failed for user %d: %v", userID, err)
			}
		}
	}
	return nil
}

// List returns a user's notifications, newest first.
func (s *Service) List(userID uint, offset, limit int) ([]models.Notification, int64, error) {
	return s.repo.ListByUser(userID, offset, limit)
}

// MarkRead marks one of the user's notifications as read.
func (s *Service) MarkRead(userID, notificationID uint) error {
	return s.repo.MarkRead(userID, notificationID)
}
