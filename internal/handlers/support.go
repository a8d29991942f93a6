package handlers

import (
	"taskhive/internal/middleware"
	"taskhive/internal/services/support"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type SupportHandler struct {
	supportService *support.Service
}

func NewSupportHandler(supportService *support.Service) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

func (h *SupportHandler) OpenTicket(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ticket, err := h.supportService.Open(c.Context(), p, input.Subject, input.Message)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

func (h *SupportHandler) ListMyTickets(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	tickets, err := h.supportService.ListMine(c.Context(), p)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Tickets retrieved", tickets)
}

func (h *SupportHandler) CloseTicket(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.supportService.Close(c.Context(), p, ticketID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Ticket closed", ticket)
}

// ReplyTicket records an admin answer.
func (h *SupportHandler) ReplyTicket(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	var input struct {
		Reply string `json:"reply"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ticket, err := h.supportService.Reply(c.Context(), p, ticketID, input.Reply)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Reply sent", ticket)
}

// ListOpenTickets returns every open ticket, oldest first.
func (h *SupportHandler) ListOpenTickets(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	tickets, err := h.supportService.ListOpen(c.Context(), p)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Open tickets retrieved", tickets)
}
