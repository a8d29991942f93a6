package repositories

import (
	"time"

	"taskhive/internal/models"

	"gorm.io/gorm"
)

type TimeReportRepository interface {
	Create(report *models.TimeReport) error
	FindByID(id uint) (*models.TimeReport, error)
	Update(report *models.TimeReport) error
	ListByTask(taskID uint) ([]models.TimeReport, error)
	ListByWorker(workerID uint) ([]models.TimeReport, error)
	// ListApprovedUnpaid returns approved reports for a task that no
	// weekly payment has been created for yet.
	ListApprovedUnpaid(taskID uint) ([]models.TimeReport, error)
	ExistsForWeek(taskID, workerID uint, weekStart time.Time) (bool, error)
}

type timeReportRepository struct {
	db *gorm.DB
}

func NewTimeReportRepository(db *gorm.DB) TimeReportRepository {
	return &timeReportRepository{db: db}
}

func (r *timeReportRepository) Create(report *models.TimeReport) error {
	return r.db.Create(report).Error
}

func (r *timeReportRepository) FindByID(id uint) (*models.TimeReport, error) {
	var report models.TimeReport
	if err := r.db.First(&report, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *timeReportRepository) Update(report *models.TimeReport) error {
	return r.db.Save(report).Error
}

func (r *timeReportRepository) ListByTask(taskID uint) ([]models.TimeReport, error) {
	var reports []models.TimeReport
	err := r.db.Where("task_id = ?", taskID).Order("week_start DESC").Find(&reports).Error
	return reports, err
}

func (r *timeReportRepository) ListByWorker(workerID uint) ([]models.TimeReport, error) {
	var reports []models.TimeReport
	err := r.db.Where("worker_id = ?", workerID).Order("week_start DESC").Find(&reports).Error
	return reports, err
}

func (r *timeReportRepository) ListApprovedUnpaid(taskID uint) ([]models.TimeReport, error) {
	var reports []models.TimeReport
	err := r.db.Where("task_id = ? AND status = ?", taskID, models.TimeReportApproved).
		Where("id NOT IN (?)",
			r.db.Model(&models.WeeklyPayment{}).Select("time_report_id").Where("task_id = ?", taskID)).
		Order("week_start ASC").
		Find(&reports).Error
	return reports, err
}

func (r *timeReportRepository) ExistsForWeek(taskID, workerID uint, weekStart time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.TimeReport{}).
		Where("task_id = ? AND worker_id = ? AND week_start = ?", taskID, workerID, weekStart).
		Count(&count).Error
	return count > 0, err
}
