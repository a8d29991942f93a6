package handlers

import (
	"time"

	"taskhive/internal/middleware"
	"taskhive/internal/services/timereport"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TimeReportHandler struct {
	reportService *timereport.Service
}

func NewTimeReportHandler(reportService *timereport.Service) *TimeReportHandler {
	return &TimeReportHandler{reportService: reportService}
}

// SubmitReport creates a pending time report for the assigned worker.
func (h *TimeReportHandler) SubmitReport(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input struct {
		TaskID    uint    `json:"task_id"`
		WeekStart string  `json:"week_start"`
		Hours     float64 `json:"hours"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	weekStart, err := time.Parse("2006-01-02", input.WeekStart)
	if err != nil {
		return response.BadRequest(c, "week_start must be YYYY-MM-DD")
	}

	report, err := h.reportService.Submit(c.Context(), p, timereport.SubmitInput{
		TaskID:    input.TaskID,
		WeekStart: weekStart,
		Hours:     input.Hours,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// ApproveReport moves a pending report to approved.
func (h *TimeReportHandler) ApproveReport(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	reportID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.Approve(c.Context(), p, reportID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Time report approved", report)
}

// RejectReport moves a pending report to rejected, with an optional reason.
func (h *TimeReportHandler) RejectReport(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	reportID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Reject(c.Context(), p, reportID, input.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Time report rejected", report)
}

// DisputeReport flags a pending report as contested.
func (h *TimeReportHandler) DisputeReport(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	reportID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.MarkDisputed(c.Context(), p, reportID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Time report disputed", report)
}

// ListMyReports returns the worker's own reports.
func (h *TimeReportHandler) ListMyReports(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	reports, err := h.reportService.ListMine(c.Context(), p)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Time reports retrieved", reports)
}

// ListTaskReports returns a task's reports for its participants.
func (h *TimeReportHandler) ListTaskReports(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	taskID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	reports, err := h.reportService.ListForTask(c.Context(), p, taskID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Time reports retrieved", reports)
}
