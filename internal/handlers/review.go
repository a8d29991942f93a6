package handlers

import (
	"taskhive/internal/middleware"
	"taskhive/internal/services/review"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviewService *review.Service
}

func NewReviewHandler(reviewService *review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview records a client's review of a worker on a completed task.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input struct {
		TaskID  uint   `json:"task_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	r, err := h.reviewService.Create(c.Context(), p, review.CreateInput{
		TaskID:  input.TaskID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// ListWorkerReviews returns a worker's reviews.
func (h *ReviewHandler) ListWorkerReviews(c *fiber.Ctx) error {
	workerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}
	reviews, err := h.reviewService.ListForWorker(c.Context(), workerID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Reviews retrieved", reviews)
}
