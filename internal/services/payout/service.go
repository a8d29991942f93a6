// Package payout turns approved time reports into weekly payments.
//
// The batch runs on an external schedule. Each task-week is processed
// independently: a failure is recorded and the loop moves on, and the next
// run picks up whatever was left unprocessed. At-most-once payment per
// (task, week) is enforced by an existence check inside the task-week's
// database transaction.
package payout

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"taskhive/internal/config"
	"taskhive/internal/models"
	"taskhive/internal/repositories"
	"taskhive/internal/services/fees"
	"taskhive/internal/services/stripeproc"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Processor creates the charge and transfer for a payment. Satisfied by
// stripeproc.Client.
type Processor interface {
	Charge(ctx context.Context, req stripeproc.ChargeRequest) (*stripeproc.ChargeResult, error)
}

// Notifier delivers a notification to a user.
type Notifier interface {
	Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error
}

type Service struct {
	db           txRunner
	tasks        repositories.TaskRepository
	reports      repositories.TimeReportRepository
	payments     repositories.WeeklyPaymentRepository
	transactions repositories.TransactionRepository
	users        repositories.UserRepository
	processor    Processor
	notifier     Notifier
	// feeConfig is re-resolved on every run so settings changes apply
	// without a restart.
	feeConfig func() config.FeeConfig
}

// txRunner matches gorm.DB's Transaction method.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error) error
}

// gormRunner adapts *gorm.DB to txRunner.
type gormRunner struct{ db *gorm.DB }

func (g gormRunner) Transaction(fc func(tx *gorm.DB) error) error {
	return g.db.Transaction(fc)
}

func NewService(
	db *gorm.DB,
	tasks repositories.TaskRepository,
	reports repositories.TimeReportRepository,
	payments repositories.WeeklyPaymentRepository,
	transactions repositories.TransactionRepository,
	users repositories.UserRepository,
	processor Processor,
	notifier Notifier,
	feeConfig func() config.FeeConfig,
) *Service {
	return &Service{
		db:           gormRunner{db: db},
		tasks:        tasks,
		reports:      reports,
		payments:     payments,
		transactions: transactions,
		users:        users,
		processor:    processor,
		notifier:     notifier,
		feeConfig:    feeConfig,
	}
}

// Run executes one batch pass over every payable task.
func (s *Service) Run(ctx context.Context) Result {
	result := Result{Processed: []ProcessedWeek{}, Errors: []WeekError{}}

	cfg := s.feeConfig()
	calculator := fees.NewCalculator(cfg)

	tasks, err := s.tasks.ListPayable()
	if err != nil {
		result.Errors = append(result.Errors, WeekError{Error: fmt.Sprintf("listing payable tasks: %v", err)})
		return result
	}

	for _, task := range tasks {
		reports, err := s.reports.ListApprovedUnpaid(task.ID)
		if err != nil {
			result.Errors = append(result.Errors, WeekError{TaskID: task.ID, Error: fmt.Sprintf("listing approved reports: %v", err)})
			continue
		}
		if len(reports) == 0 {
			continue
		}

		for _, group := range groupByWeek(reports) {
			processed, err := s.processWeek(ctx, task, group, calculator, cfg)
			if err != nil {
				log.Printf("payout: task %d week %s failed: %v", task.ID, group.weekStart.Format("2006-01-02"), err)
				result.Errors = append(result.Errors, WeekError{
					TaskID:    task.ID,
					WeekStart: group.weekStart,
					Error:     err.Error(),
				})
				continue
			}
			if processed != nil {
				result.Processed = append(result.Processed, *processed)
			}
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}

// processWeek pays one task-week. Returns (nil, nil) when the week was
// already paid: re-running the batch is a no-op, not an error.
func (s *Service) processWeek(ctx context.Context, task models.Task, group reportGroup, calculator *fees.Calculator, cfg config.FeeConfig) (*ProcessedWeek, error) {
	worker, err := s.users.GetByID(*task.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("loading worker %d: %w", *task.WorkerID, err)
	}

	rate := task.HourlyRate
	if rate == 0 {
		rate = worker.HourlyRate
	}

	hours := group.totalHours()
	amount := hours * rate
	breakdown, err := calculator.Calculate(amount, cfg.PlatformFeeRate)
	if err != nil {
		return nil, fmt.Errorf("calculating fees: %w", err)
	}

	exists, err := s.payments.ExistsForTaskWeek(task.ID, group.weekStart)
	if err != nil {
		return nil, fmt.Errorf("checking existing payment: %w", err)
	}
	if exists {
		return nil, nil
	}

	charge, err := s.processor.Charge(ctx, stripeproc.ChargeRequest{
		AmountCents:        fees.AmountInCents(breakdown.TotalAmount),
		TransferCents:      fees.AmountInCents(breakdown.BaseAmount),
		Description:        fmt.Sprintf("Weekly payment, task %d, week of %s", task.ID, group.weekStart.Format("2006-01-02")),
		DestinationAccount: worker.StripeAccountID,
		Metadata: map[string]string{
			"task_id":               fmt.Sprintf("%d", task.ID),
			"week_start":            group.weekStart.Format("2006-01-02"),
			"platform_fee":          fmt.Sprintf("%.2f", breakdown.PlatformFee),
			"trust_and_support_fee": fmt.Sprintf("%.2f", breakdown.TrustAndSupportFee),
			"stripe_fee":            fmt.Sprintf("%.2f", breakdown.StripeFee),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("processor charge: %w", err)
	}

	transaction := &models.Transaction{
		Type:            models.TransactionTypeWeeklyPayout,
		SenderID:        task.ClientID,
		ReceiverID:      worker.ID,
		Amount:          breakdown.TotalAmount,
		Fee:             breakdown.PlatformFee + breakdown.TrustAndSupportFee + breakdown.StripeFee,
		Status:          models.TransactionStatusCompleted,
		Description:     fmt.Sprintf("Weekly payment for week of %s", group.weekStart.Format("2006-01-02")),
		Reference:       uuid.NewString(),
		PaymentIntentID: charge.PaymentIntentID,
		TransferID:      charge.TransferID,
		Metadata:        breakdown.Metadata(),
	}

	payment := &models.WeeklyPayment{
		TaskID:             task.ID,
		TimeReportID:       group.reports[0].ID,
		WeekStart:          group.weekStart,
		Amount:             breakdown.BaseAmount,
		PlatformFee:        breakdown.PlatformFee,
		TrustAndSupportFee: breakdown.TrustAndSupportFee,
		StripeFee:          breakdown.StripeFee,
		TotalAmount:        breakdown.TotalAmount,
	}

	// The payment and its transaction land atomically so a crash cannot
	// leave a payment without a linked transaction.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactions.Create(transaction); err != nil {
			return err
		}
		payment.TransactionID = &transaction.ID
		return s.payments.Create(payment)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting payment: %w", err)
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Payment of $%.2f created for week of %s", breakdown.BaseAmount, group.weekStart.Format("2006-01-02"))
		_ = s.notifier.Create(ctx, worker.ID, models.NotificationPaymentCreated, msg, &task.ID)
	}

	return &ProcessedWeek{
		TaskID:        task.ID,
		WorkerID:      worker.ID,
		WeekStart:     group.weekStart,
		Hours:         hours,
		Amount:        breakdown.BaseAmount,
		TotalCharged:  breakdown.TotalAmount,
		PaymentID:     payment.ID,
		TransactionID: transaction.ID,
	}, nil
}

// groupByWeek buckets reports by week-start date, oldest week first.
func groupByWeek(reports []models.TimeReport) []reportGroup {
	buckets := make(map[time.Time][]models.TimeReport)
	for _, r := range reports {
		key := r.WeekStart.UTC().Truncate(24 * time.Hour)
		buckets[key] = append(buckets[key], r)
	}

	groups := make([]reportGroup, 0, len(buckets))
	for week, rs := range buckets {
		groups = append(groups, reportGroup{weekStart: week, reports: rs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].weekStart.Before(groups[j].weekStart)
	})
	return groups
}
