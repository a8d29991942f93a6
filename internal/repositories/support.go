package repositories

import (
	"taskhive/internal/models"

	"gorm.io/gorm"
)

type SupportTicketRepository interface {
	Create(ticket *models.SupportTicket) error
	FindByID(id uint) (*models.SupportTicket, error)
	Update(ticket *models.SupportTicket) error
	ListByUser(userID uint) ([]models.SupportTicket, error)
	ListOpen() ([]models.SupportTicket, error)
}

type supportTicketRepository struct {
	db *gorm.DB
}

func NewSupportTicketRepository(db *gorm.DB) SupportTicketRepository {
	return &supportTicketRepository{db: db}
}

func (r *supportTicketRepository) Create(ticket *models.SupportTicket) error {
	return r.db.Create(ticket).Error
}

func (r *supportTicketRepository) FindByID(id uint) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := r.db.First(&ticket, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *supportTicketRepository) Update(ticket *models.SupportTicket) error {
	return r.db.Save(ticket).Error
}

func (r *supportTicketRepository) ListByUser(userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *supportTicketRepository) ListOpen() ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.Where("status = ?", models.TicketStatusOpen).Order("created_at ASC").Find(&tickets).Error
	return tickets, err
}
