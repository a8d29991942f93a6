package repositories

import (
	"time"

	"taskhive/internal/models"

	"gorm.io/gorm"
)

type WeeklyPaymentRepository interface {
	Create(payment *models.WeeklyPayment) error
	FindByID(id uint) (*models.WeeklyPayment, error)
	ExistsForTaskWeek(taskID uint, weekStart time.Time) (bool, error)
	ListByTask(taskID uint) ([]models.WeeklyPayment, error)
	List(offset, limit int) ([]models.WeeklyPayment, int64, error)
}

type weeklyPaymentRepository struct {
	db *gorm.DB
}

func NewWeeklyPaymentRepository(db *gorm.DB) WeeklyPaymentRepository {
	return &weeklyPaymentRepository{db: db}
}

func (r *weeklyPaymentRepository) Create(payment *models.WeeklyPayment) error {
	return r.db.Create(payment).Error
}

func (r *weeklyPaymentRepository) FindByID(id uint) (*models.WeeklyPayment, error) {
	var payment models.WeeklyPayment
	if err := r.db.First(&payment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *weeklyPaymentRepository) ExistsForTaskWeek(taskID uint, weekStart time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.WeeklyPayment{}).
		Where("task_id = ? AND week_start = ?", taskID, weekStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *weeklyPaymentRepository) ListByTask(taskID uint) ([]models.WeeklyPayment, error) {
	var payments []models.WeeklyPayment
	err := r.db.Where("task_id = ?", taskID).Order("week_start DESC").Find(&payments).Error
	return payments, err
}

func (r *weeklyPaymentRepository) List(offset, limit int) ([]models.WeeklyPayment, int64, error) {
	var payments []models.WeeklyPayment
	var total int64

	if err := r.db.Model(&models.WeeklyPayment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&payments).Error
	return payments, total, err
}
