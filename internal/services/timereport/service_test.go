package timereport

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskhive/internal/errors"
	"taskhive/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockTimeReportRepo struct {
	mock.Mock
}

func (m *mockTimeReportRepo) Create(report *models.TimeReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *mockTimeReportRepo) FindByID(id uint) (*models.TimeReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeReport), args.Error(1)
}

func (m *mockTimeReportRepo) Update(report *models.TimeReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *mockTimeReportRepo) ListByTask(taskID uint) ([]models.TimeReport, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeReport), args.Error(1)
}

func (m *mockTimeReportRepo) ListByWorker(workerID uint) ([]models.TimeReport, error) {
	args := m.Called(workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeReport), args.Error(1)
}

func (m *mockTimeReportRepo) ListApprovedUnpaid(taskID uint) ([]models.TimeReport, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeReport), args.Error(1)
}

func (m *mockTimeReportRepo) ExistsForWeek(taskID, workerID uint, weekStart time.Time) (bool, error) {
	args := m.Called(taskID, workerID, weekStart)
	return args.Bool(0), args.Error(1)
}

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Create(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(id uint) (*models.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskRepo) Update(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *mockTaskRepo) ListByClient(clientID uint) ([]models.Task, error) {
	args := m.Called(clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *mockTaskRepo) ListByWorker(workerID uint) ([]models.Task, error) {
	args := m.Called(workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *mockTaskRepo) ListPayable() ([]models.Task, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *mockTaskRepo) CountCompletedByWorker(workerID uint) (int64, error) {
	args := m.Called(workerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error {
	args := m.Called(ctx, userID, notifType, message, taskID)
	return args.Error(0)
}

const (
	clientID uint = 1
	workerID uint = 2
	adminID  uint = 9
)

func assignedTask() *models.Task {
	wid := workerID
	return &models.Task{
		Model:    gorm.Model{ID: 10},
		ClientID: clientID,
		WorkerID: &wid,
		Status:   models.TaskStatusInProgress,
	}
}

func pendingReport() *models.TimeReport {
	return &models.TimeReport{
		Model:     gorm.Model{ID: 100},
		TaskID:    10,
		WorkerID:  workerID,
		WeekStart: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Hours:     32,
		Status:    models.TimeReportPending,
	}
}

func newTestService(reports *mockTimeReportRepo, tasks *mockTaskRepo, notifier *mockNotifier) *Service {
	// A nil *mockNotifier must stay a nil interface, not a typed nil, or
	// the service's no-notifier guard cannot see it.
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	return NewService(reports, tasks, n, nil)
}

func TestSubmitCreatesPendingReport(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)

	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("ExistsForWeek", uint(10), workerID, mock.Anything).Return(false, nil)
	reports.On("Create", mock.AnythingOfType("*models.TimeReport")).Return(nil)

	svc := newTestService(reports, tasks, nil)
	// Wednesday: the stored week must be normalized back to Monday.
	report, err := svc.Submit(context.Background(), models.Principal{UserID: workerID, Role: models.RoleWorker}, SubmitInput{
		TaskID:    10,
		WeekStart: time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC),
		Hours:     32,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportPending, report.Status)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), report.WeekStart)
	reports.AssertExpectations(t)
}

func TestSubmitRejectsInvalidHours(t *testing.T) {
	svc := newTestService(new(mockTimeReportRepo), new(mockTaskRepo), nil)
	p := models.Principal{UserID: workerID, Role: models.RoleWorker}

	for _, hours := range []float64{0, -1, 168.5} {
		_, err := svc.Submit(context.Background(), p, SubmitInput{TaskID: 10, WeekStart: time.Now(), Hours: hours})
		domainErr, ok := errors.As(err)
		assert.True(t, ok)
		assert.Equal(t, errors.KindInvalidArgument, domainErr.Kind, "hours=%v", hours)
	}
}

func TestSubmitRejectsNonAssignedWorker(t *testing.T) {
	tasks := new(mockTaskRepo)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)

	svc := newTestService(new(mockTimeReportRepo), tasks, nil)
	_, err := svc.Submit(context.Background(), models.Principal{UserID: 99, Role: models.RoleWorker}, SubmitInput{
		TaskID:    10,
		WeekStart: time.Now(),
		Hours:     8,
	})

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindForbidden, domainErr.Kind)
}

func TestSubmitRejectsDuplicateWeek(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("ExistsForWeek", uint(10), workerID, mock.Anything).Return(true, nil)

	svc := newTestService(reports, tasks, nil)
	_, err := svc.Submit(context.Background(), models.Principal{UserID: workerID, Role: models.RoleWorker}, SubmitInput{
		TaskID:    10,
		WeekStart: time.Now(),
		Hours:     8,
	})

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindInvalidState, domainErr.Kind)
}

func TestApproveByClient(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)
	notifier := new(mockNotifier)

	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)
	notifier.On("Create", mock.Anything, workerID, models.NotificationTimeReportApproved, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(reports, tasks, notifier)
	report, err := svc.Approve(context.Background(), models.Principal{UserID: clientID, Role: models.RoleClient}, 100)

	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportApproved, report.Status)
	assert.NotNil(t, report.ApprovedBy)
	assert.Equal(t, clientID, *report.ApprovedBy)
	assert.NotNil(t, report.ApprovedAt)
	notifier.AssertExpectations(t)
}

func TestDecisionsWithoutNotifier(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)

	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)

	svc := newTestService(reports, tasks, nil)

	report, err := svc.Approve(context.Background(), models.Principal{UserID: clientID, Role: models.RoleClient}, 100)
	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportApproved, report.Status)

	disputed := pendingReport()
	disputed.Status = models.TimeReportDisputed
	reports2 := new(mockTimeReportRepo)
	reports2.On("FindByID", uint(100)).Return(disputed, nil)
	reports2.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)

	svc2 := newTestService(reports2, new(mockTaskRepo), nil)
	resolved, err := svc2.ResolveDispute(context.Background(), models.Principal{UserID: adminID, Role: models.RoleAdmin}, 100, false, "")
	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportRejected, resolved.Status)
}

func TestApproveByAdmin(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)

	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)

	svc := newTestService(reports, tasks, nil)
	report, err := svc.Approve(context.Background(), models.Principal{UserID: adminID, Role: models.RoleAdmin}, 100)

	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportApproved, report.Status)
}

func TestApproveByStrangerForbidden(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)

	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)

	svc := newTestService(reports, tasks, nil)
	_, err := svc.Approve(context.Background(), models.Principal{UserID: 77, Role: models.RoleClient}, 100)

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindForbidden, domainErr.Kind)
	reports.AssertNotCalled(t, "Update", mock.Anything)
}

func TestApproveNonPendingConflict(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)

	report := pendingReport()
	report.Status = models.TimeReportApproved
	reports.On("FindByID", uint(100)).Return(report, nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)

	svc := newTestService(reports, tasks, nil)
	_, err := svc.Approve(context.Background(), models.Principal{UserID: clientID, Role: models.RoleClient}, 100)

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindInvalidState, domainErr.Kind)
	// The current status is reported back to the caller.
	assert.Contains(t, domainErr.Message, models.TimeReportApproved)
}

func TestRejectWithReason(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)
	notifier := new(mockNotifier)

	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)
	notifier.On("Create", mock.Anything, workerID, models.NotificationTimeReportRejected, mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "hours do not match the task log")
	}), mock.Anything).Return(nil)

	svc := newTestService(reports, tasks, notifier)
	report, err := svc.Reject(context.Background(), models.Principal{UserID: clientID, Role: models.RoleClient}, 100, "hours do not match the task log")

	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportRejected, report.Status)
	assert.Equal(t, "hours do not match the task log", report.RejectReason)
	notifier.AssertExpectations(t)
}

func TestRejectReasonLength(t *testing.T) {
	p := models.Principal{UserID: clientID, Role: models.RoleClient}

	tests := []struct {
		name   string
		reason string
		wantOK bool
	}{
		{"empty reason allowed", "", true},
		{"too short", "too short", false},
		{"minimum length", "ten chars!", true},
		{"too long", strings.Repeat("x", 501), false},
		{"maximum length", strings.Repeat("x", 500), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reports := new(mockTimeReportRepo)
			tasks := new(mockTaskRepo)
			reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
			tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
			reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)

			svc := newTestService(reports, tasks, nil)
			_, err := svc.Reject(context.Background(), p, 100, tc.reason)

			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				domainErr, ok := errors.As(err)
				assert.True(t, ok)
				assert.Equal(t, errors.KindInvalidArgument, domainErr.Kind)
			}
		})
	}
}

func TestMarkDisputedByWorker(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)
	notifier := new(mockNotifier)

	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)
	reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)
	// Both parties are told about the dispute.
	notifier.On("Create", mock.Anything, workerID, models.NotificationTimeReportDisputed, mock.Anything, mock.Anything).Return(nil)
	notifier.On("Create", mock.Anything, clientID, models.NotificationTimeReportDisputed, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(reports, tasks, notifier)
	report, err := svc.MarkDisputed(context.Background(), models.Principal{UserID: workerID, Role: models.RoleWorker}, 100)

	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportDisputed, report.Status)
	notifier.AssertExpectations(t)
}

func TestMarkDisputedByStrangerForbidden(t *testing.T) {
	reports := new(mockTimeReportRepo)
	tasks := new(mockTaskRepo)
	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)
	tasks.On("FindByID", uint(10)).Return(assignedTask(), nil)

	svc := newTestService(reports, tasks, nil)
	_, err := svc.MarkDisputed(context.Background(), models.Principal{UserID: 77, Role: models.RoleWorker}, 100)

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindForbidden, domainErr.Kind)
}

func TestResolveDisputeAdminOnly(t *testing.T) {
	svc := newTestService(new(mockTimeReportRepo), new(mockTaskRepo), nil)
	_, err := svc.ResolveDispute(context.Background(), models.Principal{UserID: clientID, Role: models.RoleClient}, 100, true, "")

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindForbidden, domainErr.Kind)
}

func TestResolveDisputeApproves(t *testing.T) {
	reports := new(mockTimeReportRepo)

	report := pendingReport()
	report.Status = models.TimeReportDisputed
	reports.On("FindByID", uint(100)).Return(report, nil)
	reports.On("Update", mock.AnythingOfType("*models.TimeReport")).Return(nil)

	svc := newTestService(reports, new(mockTaskRepo), nil)
	resolved, err := svc.ResolveDispute(context.Background(), models.Principal{UserID: adminID, Role: models.RoleAdmin}, 100, true, "")

	assert.NoError(t, err)
	assert.Equal(t, models.TimeReportApproved, resolved.Status)
	assert.Equal(t, adminID, *resolved.ApprovedBy)
}

func TestResolveDisputeRequiresDisputedStatus(t *testing.T) {
	reports := new(mockTimeReportRepo)
	reports.On("FindByID", uint(100)).Return(pendingReport(), nil)

	svc := newTestService(reports, new(mockTaskRepo), nil)
	_, err := svc.ResolveDispute(context.Background(), models.Principal{UserID: adminID, Role: models.RoleAdmin}, 100, false, "")

	domainErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindInvalidState, domainErr.Kind)
}
