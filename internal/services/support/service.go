package support

import (
	"context"

	"taskhive/internal/errors"
	"taskhive/internal/models"
	"taskhive/internal/repositories"
)

// Notifier delivers a notification to a user.
type Notifier interface {
	Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error
}

type Service struct {
	tickets  repositories.SupportTicketRepository
	notifier Notifier
}

func NewService(tickets repositories.SupportTicketRepository, notifier Notifier) *Service {
	return &Service{tickets: tickets, notifier: notifier}
}

// Open creates a new ticket for the caller.
func (s *Service) Open(ctx context.Context, p models.Principal, subject, message string) (*models.SupportTicket, error) {
	if subject == "" || message == "" {
		return nil, errors.NewInvalidArgument("subject and message are required")
	}

	ticket := &models.SupportTicket{
		UserID:  p.UserID,
		Subject: subject,
		Message: message,
		Status:  models.TicketStatusOpen,
	}
	if err := s.tickets.Create(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Reply records an admin answer and notifies the ticket owner.
func (s *Service) Reply(ctx context.Context, p models.Principal, ticketID uint, reply string) (*models.SupportTicket, error) {
	if !p.IsAdmin() {
		return nil, errors.NewForbidden("only admins can answer tickets")
	}
	if reply == "" {
		return nil, errors.NewInvalidArgument("reply is required")
	}

	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		return nil, errors.NewNotFound("ticket")
	}
	if ticket.Status == models.TicketStatusClosed {
		return nil, errors.NewInvalidState(ticket.Status)
	}

	ticket.Reply = reply
	ticket.Status = models.TicketStatusAnswered
	if err := s.tickets.Update(ticket); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.Create(ctx, ticket.UserID, models.NotificationTicketAnswered,
			"Your support ticket was answered: "+ticket.Subject, nil)
	}
	return ticket, nil
}

// Close marks a ticket closed. The owner or an admin may close.
func (s *Service) Close(ctx context.Context, p models.Principal, ticketID uint) (*models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		return nil, errors.NewNotFound("ticket")
	}
	if !p.IsAdmin() && ticket.UserID != p.UserID {
		return nil, errors.NewForbidden("not your ticket")
	}
	if ticket.Status == models.TicketStatusClosed {
		return nil, errors.NewInvalidState(ticket.Status)
	}

	ticket.Status = models.TicketStatusClosed
	if err := s.tickets.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListMine returns the caller's tickets.
func (s *Service) ListMine(ctx context.Context, p models.Principal) ([]models.SupportTicket, error) {
	return s.tickets.ListByUser(p.UserID)
}

// ListOpen returns all open tickets, oldest first. Admin only.
func (s *Service) ListOpen(ctx context.Context, p models.Principal) ([]models.SupportTicket, error) {
	if !p.IsAdmin() {
		return nil, errors.NewForbidden("only admins can list open tickets")
	}
	return s.tickets.ListOpen()
}
