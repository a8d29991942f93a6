// Package timereport implements the weekly time report approval workflow.
//
// PENDING is the only entry state. The task's client (or an admin) moves a
// report to APPROVED or REJECTED; either party can contest a pending report
// into DISPUTED, which only an admin resolves.
package timereport

import (
	"context"
	"fmt"
	"time"

	"taskhive/internal/errors"
	"taskhive/internal/models"
	"taskhive/internal/repositories"

	"gorm.io/gorm"
)

const (
	minRejectReasonLen = 10
	maxRejectReasonLen = 500
	maxWeekHours       = 168
)

// Notifier delivers a notification to a user. Satisfied by
// notification.Service.
type Notifier interface {
	Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error
}

type Service struct {
	reports  repositories.TimeReportRepository
	tasks    repositories.TaskRepository
	notifier Notifier
	db       *gorm.DB
}

func NewService(reports repositories.TimeReportRepository, tasks repositories.TaskRepository, notifier Notifier, db *gorm.DB) *Service {
	return &Service{reports: reports, tasks: tasks, notifier: notifier, db: db}
}

// SubmitInput is a worker's claim of hours for a task-week.
type SubmitInput struct {
	TaskID    uint
	WeekStart time.Time
	Hours     float64
}

// Submit creates a PENDING report for the assigned worker.
func (s *Service) Submit(ctx context.Context, p models.Principal, input SubmitInput) (*models.TimeReport, error) {
	if input.Hours <= 0 || input.Hours > maxWeekHours {
		return nil, errors.NewInvalidArgument("hours must be in (0, %d], got %v", maxWeekHours, input.Hours)
	}

	task, err := s.tasks.FindByID(input.TaskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	if task.WorkerID == nil || *task.WorkerID != p.UserID {
		return nil, errors.NewForbidden("only the assigned worker can submit time reports")
	}

	weekStart := models.WeekStartOf(input.WeekStart)
	exists, err := s.reports.ExistsForWeek(task.ID, p.UserID, weekStart)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewInvalidState(models.TimeReportPending)
	}

	report := &models.TimeReport{
		TaskID:    task.ID,
		WorkerID:  p.UserID,
		WeekStart: weekStart,
		Hours:     input.Hours,
		Status:    models.TimeReportPending,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

// Approve moves a PENDING report to APPROVED, recording approver and time.
func (s *Service) Approve(ctx context.Context, p models.Principal, reportID uint) (*models.TimeReport, error) {
	return s.decide(ctx, p, reportID, models.TimeReportApproved, "")
}

// Reject moves a PENDING report to REJECTED. The reason is optional but must
// be 10-500 characters when present.
func (s *Service) Reject(ctx context.Context, p models.Principal, reportID uint, reason string) (*models.TimeReport, error) {
	if reason != "" && (len(reason) < minRejectReasonLen || len(reason) > maxRejectReasonLen) {
		return nil, errors.NewInvalidArgument("reject reason must be %d-%d characters, got %d", minRejectReasonLen, maxRejectReasonLen, len(reason))
	}
	return s.decide(ctx, p, reportID, models.TimeReportRejected, reason)
}

func (s *Service) decide(ctx context.Context, p models.Principal, reportID uint, status, reason string) (*models.TimeReport, error) {
	report, err := s.reports.FindByID(reportID)
	if err != nil {
		return nil, errors.NewNotFound("time report")
	}

	task, err := s.tasks.FindByID(report.TaskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	if err := authorizeModeration(p, task); err != nil {
		return nil, err
	}
	if report.Status != models.TimeReportPending {
		return nil, errors.NewInvalidState(report.Status)
	}

	if err := s.transition(report, p.UserID, status, reason); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, report, status)
	return report, nil
}

// MarkDisputed flags a pending report as contested. Either party to the
// task, or an admin, may dispute.
func (s *Service) MarkDisputed(ctx context.Context, p models.Principal, reportID uint) (*models.TimeReport, error) {
	report, err := s.reports.FindByID(reportID)
	if err != nil {
		return nil, errors.NewNotFound("time report")
	}

	task, err := s.tasks.FindByID(report.TaskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	if !p.IsAdmin() && p.UserID != task.ClientID && p.UserID != report.WorkerID {
		return nil, errors.NewForbidden("only task participants can dispute a time report")
	}
	if report.Status != models.TimeReportPending {
		return nil, errors.NewInvalidState(report.Status)
	}

	report.Status = models.TimeReportDisputed
	if err := s.reports.Update(report); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Time report for week of %s is disputed", report.WeekStart.Format("2006-01-02"))
		_ = s.notifier.Create(ctx, report.WorkerID, models.NotificationTimeReportDisputed, msg, &report.TaskID)
		_ = s.notifier.Create(ctx, task.ClientID, models.NotificationTimeReportDisputed, msg, &report.TaskID)
	}
	return report, nil
}

// ResolveDispute moves a DISPUTED report to APPROVED or REJECTED. Admin only.
func (s *Service) ResolveDispute(ctx context.Context, p models.Principal, reportID uint, approve bool, reason string) (*models.TimeReport, error) {
	if !p.IsAdmin() {
		return nil, errors.NewForbidden("only admins can resolve disputed time reports")
	}

	report, err := s.reports.FindByID(reportID)
	if err != nil {
		return nil, errors.NewNotFound("time report")
	}
	if report.Status != models.TimeReportDisputed {
		return nil, errors.NewInvalidState(report.Status)
	}

	status := models.TimeReportRejected
	if approve {
		status = models.TimeReportApproved
	}
	if err := s.transition(report, p.UserID, status, reason); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, report, status)
	return report, nil
}

// transition applies the decision inside a database transaction so the
// status, approver and timestamp land together.
func (s *Service) transition(report *models.TimeReport, approverID uint, status, reason string) error {
	now := time.Now().UTC()
	report.Status = status
	report.ApprovedBy = &approverID
	report.ApprovedAt = &now
	report.RejectReason = reason

	if s.db != nil {
		return s.db.Transaction(func(tx *gorm.DB) error {
			return s.reports.Update(report)
		})
	}
	return s.reports.Update(report)
}

func (s *Service) notifyDecision(ctx context.Context, report *models.TimeReport, status string) {
	if s.notifier == nil {
		return
	}
	week := report.WeekStart.Format("2006-01-02")
	switch status {
	case models.TimeReportApproved:
		msg := fmt.Sprintf("Your time report for week of %s was approved", week)
		_ = s.notifier.Create(ctx, report.WorkerID, models.NotificationTimeReportApproved, msg, &report.TaskID)
	case models.TimeReportRejected:
		msg := fmt.Sprintf("Your time report for week of %s was rejected", week)
		if report.RejectReason != "" {
			msg += ": " + report.RejectReason
		}
		_ = s.notifier.Create(ctx, report.WorkerID, models.NotificationTimeReportRejected, msg, &report.TaskID)
	}
}

// ListForTask returns a task's reports, visible to the client, the assigned
// worker and admins.
func (s *Service) ListForTask(ctx context.Context, p models.Principal, taskID uint) ([]models.TimeReport, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, errors.NewNotFound("task")
	}
	involved := p.UserID == task.ClientID || (task.WorkerID != nil && *task.WorkerID == p.UserID)
	if !p.IsAdmin() && !involved {
		return nil, errors.NewForbidden("not a participant of this task")
	}
	return s.reports.ListByTask(taskID)
}

// ListMine returns the worker's own reports.
func (s *Service) ListMine(ctx context.Context, p models.Principal) ([]models.TimeReport, error) {
	return s.reports.ListByWorker(p.UserID)
}

// authorizeModeration is the ownership decision for approve/reject: the
// task's client or an admin. Returns a typed error, never panics.
func authorizeModeration(p models.Principal, task *models.Task) error {
	if p.IsAdmin() {
		return nil
	}
	if task.ClientID == p.UserID {
		return nil
	}
	return errors.NewForbidden("only the task's client can act on its time reports")
}
