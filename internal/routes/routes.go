// Package routes wires repositories, services and handlers to the fiber app.
package routes

import (
	"taskhive/internal/config"
	"taskhive/internal/handlers"
	"taskhive/internal/middleware"
	"taskhive/internal/repositories"
	"taskhive/internal/services/auth"
	"taskhive/internal/services/notification"
	"taskhive/internal/services/payout"
	"taskhive/internal/services/review"
	"taskhive/internal/services/stripeproc"
	"taskhive/internal/services/support"
	"taskhive/internal/services/task"
	"taskhive/internal/services/timereport"
	"taskhive/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	taskRepo := repositories.NewTaskRepository(db)
	reportRepo := repositories.NewTimeReportRepository(db)
	paymentRepo := repositories.NewWeeklyPaymentRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	ticketRepo := repositories.NewSupportTicketRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	notificationService := notification.NewService(notificationRepo, repositories.CacheService)
	taskService := task.NewService(taskRepo, userRepo, notificationService)
	reportService := timereport.NewService(reportRepo, taskRepo, notificationService, db)
	reviewService := review.NewService(reviewRepo, taskRepo, notificationService, repositories.CacheService)
	supportService := support.NewService(ticketRepo, notificationService)

	processor := stripeproc.New(config.GetEnv("STRIPE_SECRET_KEY", ""))
	payoutService := payout.NewService(
		db,
		taskRepo,
		reportRepo,
		paymentRepo,
		transactionRepo,
		userRepo,
		processor,
		notificationService,
		func() config.FeeConfig {
			return config.ResolveFeeConfig(settingsRepo.Lookup)
		},
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, reviewService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewTimeReportHandler(reportService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	supportHandler := handlers.NewSupportHandler(supportService)
	adminHandler := handlers.NewAdminHandler(userRepo, transactionRepo, paymentRepo, reportService, payoutService)

	// Public routes
	api := app.Group("/api")
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/health", handlers.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to TaskHive API",
			"version": "1.0.0",
		})
	})

	// Protected routes
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Get("/me", userHandler.GetProfile)
	protected.Post("/logout", authHandler.LogoutUser)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Get("/users/:id/badge", userHandler.GetWorkerBadge)
	protected.Get("/users/:id/reviews", reviewHandler.ListWorkerReviews)

	tasks := protected.Group("/tasks")
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/", taskHandler.ListTasks)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Post("/:id/assign", taskHandler.AssignWorker)
	tasks.Patch("/:id/status", taskHandler.UpdateStatus)
	tasks.Get("/:id/time-reports", reportHandler.ListTaskReports)

	reports := protected.Group("/time-reports")
	reports.Post("/", middleware.RequireRole("worker"), reportHandler.SubmitReport)
	reports.Get("/", reportHandler.ListMyReports)
	reports.Post("/:id/approve", reportHandler.ApproveReport)
	reports.Post("/:id/reject", reportHandler.RejectReport)
	reports.Post("/:id/dispute", reportHandler.DisputeReport)

	protected.Post("/reviews", reviewHandler.CreateReview)

	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	supportGroup := protected.Group("/support")
	supportGroup.Post("/", supportHandler.OpenTicket)
	supportGroup.Get("/", supportHandler.ListMyTickets)
	supportGroup.Post("/:id/close", supportHandler.CloseTicket)

	// Admin routes
	admin := protected.Group("/admin", middleware.AdminOnly)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/transactions", adminHandler.ListTransactions)
	admin.Get("/payments", adminHandler.ListPayments)
	admin.Post("/time-reports/:id/resolve", adminHandler.ResolveDispute)
	admin.Post("/payouts/run", adminHandler.RunPayout)
	admin.Get("/support", supportHandler.ListOpenTickets)
	admin.Post("/support/:id/reply", supportHandler.ReplyTicket)
}
