package task

import (
	"context"
	"fmt"

	"taskhive/internal/errors"
	"taskhive/internal/models"
	"taskhive/internal/repositories"
)

// Notifier delivers a notification to a user.
type Notifier interface {
	Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error
}

type Service struct {
	tasks    repositories.TaskRepository
	users    repositories.UserRepository
	notifier Notifier
}

func NewService(tasks repositories.TaskRepository, users repositories.UserRepository, notifier Notifier) *Service {
	return &Service{tasks: tasks, users: users, notifier: notifier}
}

type CreateInput struct {
	Title       string
	Description string
	HourlyRate  float64
}

func (s *Service) Create(ctx context.Context, p models.Principal, input CreateInput) (*models.Task, error) {
	if p.Role != models.RoleClient && !p.IsAdmin() {
		return nil, errors.NewForbidden("only clients can post tasks")
	}
	if input.Title == "" {
		return nil, errors.NewInvalidArgument("title is required")
	}
	if input.HourlyRate <= 0 {
		return nil, errors.NewInvalidArgument("hourly rate must be positive")
	}

	task := &models.Task{
		ClientID:    p.UserID,
		Title:       input.Title,
		Description: input.Description,
		HourlyRate:  input.HourlyRate,
		Status:      models.TaskStatusOpen,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Assign puts a worker on an open task and moves it to assigned.
func (s *Service) Assign(ctx context.Context, p models.Principal, taskID, workerID uint) (*models.Task, error) {
	task, err := s.ownedTask(p, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusOpen {
		return nil, errors.NewInvalidState(task.Status)
	}

	worker, err := s.users.GetByID(workerID)
	if err != nil {
		return nil, errors.NewNotFound("worker")
	}
	if !worker.IsWorker() {
		return nil, errors.NewInvalidArgument("user %d is not a worker", workerID)
	}

	task.WorkerID = &worker.ID
	task.Status = models.TaskStatusAssigned
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("You were assigned to task %q", task.Title)
		_ = s.notifier.Create(ctx, worker.ID, models.NotificationTaskAssigned, msg, &task.ID)
	}
	return task, nil
}

// taskStatusFlow lists the allowed transitions for client-driven updates.
var taskStatusFlow = map[string][]string{
	models.TaskStatusOpen:       {models.TaskStatusCancelled},
	models.TaskStatusAssigned:   {models.TaskStatusInProgress, models.TaskStatusCancelled},
	models.TaskStatusInProgress: {models.TaskStatusCompleted, models.TaskStatusCancelled},
}

// UpdateStatus moves a task along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, p models.Principal, taskID uint, status string) (*models.Task, error) {
	task, err := s.ownedTask(p, taskID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range taskStatusFlow[task.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.NewInvalidState(task.Status)
	}

	task.Status = status
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) Get(ctx context.Context, taskID uint) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	return task, nil
}

// ListMine returns tasks from the caller's side of the marketplace.
func (s *Service) ListMine(ctx context.Context, p models.Principal) ([]models.Task, error) {
	if p.Role == models.RoleWorker {
		return s.tasks.ListByWorker(p.UserID)
	}
	return s.tasks.ListByClient(p.UserID)
}

func (s *Service) ownedTask(p models.Principal, taskID uint) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	if !p.IsAdmin() && task.ClientID != p.UserID {
		return nil, errors.NewForbidden("not the task's client")
	}
	return task, nil
}
