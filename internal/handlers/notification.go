package handlers

import (
	"taskhive/internal/middleware"
	"taskhive/internal/services/notification"
	"taskhive/internal/utils/pagination"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService *notification.Service
}

func NewNotificationHandler(notificationService *notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}

	pag := pagination.ParseFromRequest(c)
	notifications, total, err := h.notificationService.List(p.UserID, pag.Offset, pag.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to list notifications")
	}
	pag.Total = total

	return c.JSON(pagination.Response(pag, notifications))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	notificationID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(p.UserID, notificationID); err != nil {
		return response.Error(c, fiber.StatusNotFound, "Notification not found")
	}
	return response.Success(c, "Notification marked read", nil)
}
