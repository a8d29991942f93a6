// Package main runs the weekly payment batch once and exits. It is meant
// to be invoked from an external scheduler (cron, a Kubernetes CronJob);
// the process exit code tells the scheduler whether every task-week went
// through.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"taskhive/internal/config"
	"taskhive/internal/repositories"
	"taskhive/internal/services/notification"
	"taskhive/internal/services/payout"
	"taskhive/internal/services/stripeproc"
)

func main() {
	config.LoadEnv()
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	db := repositories.DB
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	taskRepo := repositories.NewTaskRepository(db)
	reportRepo := repositories.NewTimeReportRepository(db)
	paymentRepo := repositories.NewWeeklyPaymentRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	notificationService := notification.NewService(notificationRepo, repositories.CacheService)
	processor := stripeproc.New(config.GetEnv("STRIPE_SECRET_KEY", ""))

	service := payout.NewService(
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

	timeout, err := time.ParseDuration(config.GetEnv("PAYOUT_TIMEOUT", "15m"))
	if err != nil {
		timeout = 15 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := service.Run(ctx)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))

	log.Printf("payout batch finished: %d processed, %d errors",
		len(result.Processed), len(result.Errors))
	if !result.Success {
		os.Exit(1)
	}
}
