package handlers

import (
	"strconv"

	"taskhive/internal/middleware"
	"taskhive/internal/services/review"
	"taskhive/internal/services/user"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService   *user.Service
	reviewService *review.Service
}

func NewUserHandler(userService *user.Service, reviewService *review.Service) *UserHandler {
	return &UserHandler{userService: userService, reviewService: reviewService}
}

// RegisterUser creates a client or worker account.
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input struct {
		Email      string  `json:"email"`
		Password   string  `json:"password"`
		Name       string  `json:"name"`
		Role       string  `json:"role"`
		HourlyRate float64 `json:"hourly_rate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	u, err := h.userService.Register(user.RegisterInput{
		Email:      input.Email,
		Password:   input.Password,
		Name:       input.Name,
		Role:       input.Role,
		HourlyRate: input.HourlyRate,
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	})
}

// GetProfile returns the caller's account.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	u, err := h.userService.Get(p.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile retrieved", u)
}

// GetWorkerBadge returns a worker's derived badge tier and the aggregates
// behind it.
func (h *UserHandler) GetWorkerBadge(c *fiber.Ctx) error {
	workerID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	tier, stats, err := h.reviewService.WorkerBadge(c.Context(), uint(workerID))
	if err != nil {
		return response.FromError(c, err)
	}

	return c.JSON(fiber.Map{
		"worker_id": workerID,
		"tier":      tier,
		"stats": fiber.Map{
			"completed_tasks": stats.CompletedTasks,
			"average_rating":  stats.AverageRating,
			"review_count":    stats.ReviewCount,
		},
	})
}
