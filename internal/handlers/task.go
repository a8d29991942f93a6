package handlers

import (
	"strconv"

	"taskhive/internal/middleware"
	"taskhive/internal/services/task"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	taskService *task.Service
}

func NewTaskHandler(taskService *task.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		HourlyRate  float64 `json:"hourly_rate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	t, err := h.taskService.Create(c.Context(), p, task.CreateInput{
		Title:       input.Title,
		Description: input.Description,
		HourlyRate:  input.HourlyRate,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}
	t, err := h.taskService.Get(c.Context(), taskID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(t)
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	tasks, err := h.taskService.ListMine(c.Context(), p)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Tasks retrieved", tasks)
}

func (h *TaskHandler) AssignWorker(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	taskID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var input struct {
		WorkerID uint `json:"worker_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	t, err := h.taskService.Assign(c.Context(), p, taskID, input.WorkerID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Worker assigned", t)
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	taskID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	t, err := h.taskService.UpdateStatus(c.Context(), p, taskID, input.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Status updated", t)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	return uint(id), err
}
