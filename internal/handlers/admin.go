package handlers

import (
	"taskhive/internal/middleware"
	"taskhive/internal/repositories"
	"taskhive/internal/services/payout"
	"taskhive/internal/services/timereport"
	"taskhive/internal/utils/pagination"
	"taskhive/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	users         repositories.UserRepository
	transactions  repositories.TransactionRepository
	payments      repositories.WeeklyPaymentRepository
	reportService *timereport.Service
	payoutService *payout.Service
}

func NewAdminHandler(
	users repositories.UserRepository,
	transactions repositories.TransactionRepository,
	payments repositories.WeeklyPaymentRepository,
	reportService *timereport.Service,
	payoutService *payout.Service,
) *AdminHandler {
	return &AdminHandler{
		users:         users,
		transactions:  transactions,
		payments:      payments,
		reportService: reportService,
		payoutService: payoutService,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pag := pagination.ParseFromRequest(c)
	users, total, err := h.users.List(pag.Offset, pag.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to list users")
	}
	pag.Total = total
	return c.JSON(pagination.Response(pag, users))
}

func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	pag := pagination.ParseFromRequest(c)
	txs, total, err := h.transactions.List(pag.Offset, pag.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to list transactions")
	}
	pag.Total = total
	return c.JSON(pagination.Response(pag, txs))
}

func (h *AdminHandler) ListPayments(c *fiber.Ctx) error {
	pag := pagination.ParseFromRequest(c)
	payments, total, err := h.payments.List(pag.Offset, pag.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to list payments")
	}
	pag.Total = total
	return c.JSON(pagination.Response(pag, payments))
}

// ResolveDispute settles a disputed time report.
func (h *AdminHandler) ResolveDispute(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	reportID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	var input struct {
		Approve bool   `json:"approve"`
		Reason  string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	report, err := h.reportService.ResolveDispute(c.Context(), p, reportID, input.Approve, input.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Dispute resolved", report)
}

// RunPayout triggers one weekly batch pass. Partial failure returns the
// error set with a non-200 status.
func (h *AdminHandler) RunPayout(c *fiber.Ctx) error {
	result := h.payoutService.Run(c.Context())
	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(result)
}
