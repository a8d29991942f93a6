package repositories

import (
	"taskhive/internal/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint) (*models.Task, error)
	Update(task *models.Task) error
	ListByClient(clientID uint) ([]models.Task, error)
	ListByWorker(workerID uint) ([]models.Task, error)
	// ListPayable returns tasks with an assigned worker that may have
	// approved, unpaid time reports.
	ListPayable() ([]models.Task, error)
	CountCompletedByWorker(workerID uint) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) FindByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepository) ListByClient(clientID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListByWorker(workerID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("worker_id = ?", workerID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListPayable() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("worker_id IS NOT NULL").
		Where("status IN ?", []string{
			models.TaskStatusAssigned,
			models.TaskStatusInProgress,
			models.TaskStatusCompleted,
		}).
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) CountCompletedByWorker(workerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("worker_id = ? AND status = ?", workerID, models.TaskStatusCompleted).
		Count(&count).Error
	return count, err
}
