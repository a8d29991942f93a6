package payout

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskhive/internal/config"
	"taskhive/internal/models"
	"taskhive/internal/services/stripeproc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

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

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(report *models.TimeReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *mockReportRepo) FindByID(id uint) (*models.TimeReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeReport), args.Error(1)
}

func (m *mockReportRepo) Update(report *models.TimeReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *mockReportRepo) ListByTask(taskID uint) ([]models.TimeReport, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeReport), args.Error(1)
}

func (m *mockReportRepo) ListByWorker(workerID uint) ([]models.TimeReport, error) {
	args := m.Called(workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeReport), args.Error(1)
}

func (m *mockReportRepo) ListApprovedUnpaid(taskID uint) ([]models.TimeReport, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeReport), args.Error(1)
}

func (m *mockReportRepo) ExistsForWeek(taskID, workerID uint, weekStart time.Time) (bool, error) {
	args := m.Called(taskID, workerID, weekStart)
	return args.Bool(0), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(payment *models.WeeklyPayment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) FindByID(id uint) (*models.WeeklyPayment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPayment), args.Error(1)
}

func (m *mockPaymentRepo) ExistsForTaskWeek(taskID uint, weekStart time.Time) (bool, error) {
	args := m.Called(taskID, weekStart)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) ListByTask(taskID uint) ([]models.WeeklyPayment, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeeklyPayment), args.Error(1)
}

func (m *mockPaymentRepo) List(offset, limit int) ([]models.WeeklyPayment, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.WeeklyPayment), args.Get(1).(int64), args.Error(2)
}

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) FindByID(id uint) (*models.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) FindByReference(reference string) (*models.Transaction, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Update(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) List(offset, limit int) ([]models.Transaction, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *mockTransactionRepo) ListByUser(userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *mockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Charge(ctx context.Context, req stripeproc.ChargeRequest) (*stripeproc.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripeproc.ChargeResult), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Create(ctx context.Context, userID uint, notifType, message string, taskID *uint) error {
	args := m.Called(ctx, userID, notifType, message, taskID)
	return args.Error(0)
}

// mockTxRunner runs the transaction callback immediately.
type mockTxRunner struct{}

func (mockTxRunner) Transaction(fc func(tx *gorm.DB) error) error {
	return fc(nil)
}

type fixture struct {
	tasks        *mockTaskRepo
	reports      *mockReportRepo
	payments     *mockPaymentRepo
	transactions *mockTransactionRepo
	users        *mockUserRepo
	processor    *mockProcessor
	notifier     *mockNotifier
	service      *Service
}

func newFixture() *fixture {
	f := &fixture{
		tasks:        new(mockTaskRepo),
		reports:      new(mockReportRepo),
		payments:     new(mockPaymentRepo),
		transactions: new(mockTransactionRepo),
		users:        new(mockUserRepo),
		processor:    new(mockProcessor),
		notifier:     new(mockNotifier),
	}
	f.service = &Service{
		db:           mockTxRunner{},
		tasks:        f.tasks,
		reports:      f.reports,
		payments:     f.payments,
		transactions: f.transactions,
		users:        f.users,
		processor:    f.processor,
		notifier:     f.notifier,
		feeConfig: func() config.FeeConfig {
			return config.FeeConfig{
				PlatformFeeRate:        config.DefaultPlatformFeeRate,
				TrustAndSupportFeeRate: config.DefaultTrustAndSupportFeeRate,
				StripeFeePercent:       config.DefaultStripeFeePercent,
				StripeFeeFixed:         config.DefaultStripeFeeFixed,
			}
		},
	}
	return f
}

var weekStart = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func payableTask() models.Task {
	wid := uint(2)
	return models.Task{
		Model:      gorm.Model{ID: 10},
		ClientID:   1,
		WorkerID:   &wid,
		HourlyRate: 50,
		Status:     models.TaskStatusInProgress,
	}
}

func approvedReport(id uint, hours float64) models.TimeReport {
	return models.TimeReport{
		Model:     gorm.Model{ID: id},
		TaskID:    10,
		WorkerID:  2,
		WeekStart: weekStart,
		Hours:     hours,
		Status:    models.TimeReportApproved,
	}
}

func worker() *models.User {
	return &models.User{
		Model:           gorm.Model{ID: 2},
		Role:            models.RoleWorker,
		HourlyRate:      40,
		StripeAccountID: "acct_worker",
	}
}

func TestRunCreatesPaymentAndTransaction(t *testing.T) {
	f := newFixture()

	f.tasks.On("ListPayable").Return([]models.Task{payableTask()}, nil)
	f.reports.On("ListApprovedUnpaid", uint(10)).Return([]models.TimeReport{approvedReport(100, 30)}, nil)
	f.users.On("GetByID", uint(2)).Return(worker(), nil)
	f.payments.On("ExistsForTaskWeek", uint(10), weekStart).Return(false, nil)

	// 30h * $50 = $1500 base; the charge covers base plus all fees, the
	// transfer is the base only.
	f.processor.On("Charge", mock.Anything, mock.MatchedBy(func(req stripeproc.ChargeRequest) bool {
		return req.TransferCents == 150000 &&
			req.AmountCents > req.TransferCents &&
			req.DestinationAccount == "acct_worker"
	})).Return(&stripeproc.ChargeResult{PaymentIntentID: "pi_1", TransferID: "tr_1"}, nil)

	f.transactions.On("Create", mock.AnythingOfType("*models.Transaction")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Transaction).ID = 500
	}).Return(nil)
	f.payments.On("Create", mock.MatchedBy(func(p *models.WeeklyPayment) bool {
		return p.TaskID == 10 &&
			p.Amount == 1500 &&
			p.TransactionID != nil && *p.TransactionID == 500
	})).Return(nil)
	f.notifier.On("Create", mock.Anything, uint(2), models.NotificationPaymentCreated, mock.Anything, mock.Anything).Return(nil)

	result := f.service.Run(context.Background())

	assert.True(t, result.Success)
	assert.Len(t, result.Processed, 1)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1500.0, result.Processed[0].Amount)
	assert.Equal(t, 30.0, result.Processed[0].Hours)
	f.payments.AssertExpectations(t)
	f.transactions.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestRunFallsBackToWorkerRate(t *testing.T) {
	f := newFixture()

	task := payableTask()
	task.HourlyRate = 0
	f.tasks.On("ListPayable").Return([]models.Task{task}, nil)
	f.reports.On("ListApprovedUnpaid", uint(10)).Return([]models.TimeReport{approvedReport(100, 10)}, nil)
	f.users.On("GetByID", uint(2)).Return(worker(), nil)
	f.payments.On("ExistsForTaskWeek", uint(10), weekStart).Return(false, nil)
	f.processor.On("Charge", mock.Anything, mock.Anything).Return(&stripeproc.ChargeResult{PaymentIntentID: "pi_1"}, nil)
	f.transactions.On("Create", mock.Anything).Return(nil)
	f.payments.On("Create", mock.Anything).Return(nil)
	f.notifier.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := f.service.Run(context.Background())

	assert.True(t, result.Success)
	assert.Len(t, result.Processed, 1)
	// 10h at the worker's $40 rate
	assert.Equal(t, 400.0, result.Processed[0].Amount)
}

func TestRunSkipsAlreadyPaidWeek(t *testing.T) {
	f := newFixture()

	f.tasks.On("ListPayable").Return([]models.Task{payableTask()}, nil)
	f.reports.On("ListApprovedUnpaid", uint(10)).Return([]models.TimeReport{approvedReport(100, 30)}, nil)
	f.users.On("GetByID", uint(2)).Return(worker(), nil)
	f.payments.On("ExistsForTaskWeek", uint(10), weekStart).Return(true, nil)

	result := f.service.Run(context.Background())

	assert.True(t, result.Success)
	assert.Empty(t, result.Processed)
	assert.Empty(t, result.Errors)
	f.processor.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRunRecordsChargeFailureAndContinues(t *testing.T) {
	f := newFixture()

	failing := payableTask()
	healthy := payableTask()
	healthy.ID = 11
	f.tasks.On("ListPayable").Return([]models.Task{failing, healthy}, nil)

	f.reports.On("ListApprovedUnpaid", uint(10)).Return([]models.TimeReport{approvedReport(100, 30)}, nil)
	healthyReport := approvedReport(101, 20)
	healthyReport.TaskID = 11
	f.reports.On("ListApprovedUnpaid", uint(11)).Return([]models.TimeReport{healthyReport}, nil)

	f.users.On("GetByID", uint(2)).Return(worker(), nil)
	f.payments.On("ExistsForTaskWeek", uint(10), weekStart).Return(false, nil)
	f.payments.On("ExistsForTaskWeek", uint(11), weekStart).Return(false, nil)

	f.processor.On("Charge", mock.Anything, mock.MatchedBy(func(req stripeproc.ChargeRequest) bool {
		return req.TransferCents == 150000
	})).Return(nil, errors.New("card declined"))
	f.processor.On("Charge", mock.Anything, mock.MatchedBy(func(req stripeproc.ChargeRequest) bool {
		return req.TransferCents == 100000
	})).Return(&stripeproc.ChargeResult{PaymentIntentID: "pi_2"}, nil)

	f.transactions.On("Create", mock.Anything).Return(nil)
	f.payments.On("Create", mock.Anything).Return(nil)
	f.notifier.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := f.service.Run(context.Background())

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, uint(10), result.Errors[0].TaskID)
	assert.Contains(t, result.Errors[0].Error, "card declined")
	// The second task still went through.
	assert.Len(t, result.Processed, 1)
	assert.Equal(t, uint(11), result.Processed[0].TaskID)
}

func TestRunGroupsMultipleWeeksSeparately(t *testing.T) {
	f := newFixture()

	week2 := weekStart.AddDate(0, 0, 7)
	r1 := approvedReport(100, 30)
	r2 := approvedReport(101, 20)
	r2.WeekStart = week2

	f.tasks.On("ListPayable").Return([]models.Task{payableTask()}, nil)
	f.reports.On("ListApprovedUnpaid", uint(10)).Return([]models.TimeReport{r2, r1}, nil)
	f.users.On("GetByID", uint(2)).Return(worker(), nil)
	f.payments.On("ExistsForTaskWeek", uint(10), mock.Anything).Return(false, nil)
	f.processor.On("Charge", mock.Anything, mock.Anything).Return(&stripeproc.ChargeResult{PaymentIntentID: "pi_1"}, nil)
	f.transactions.On("Create", mock.Anything).Return(nil)
	f.payments.On("Create", mock.Anything).Return(nil)
	f.notifier.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := f.service.Run(context.Background())

	assert.True(t, result.Success)
	assert.Len(t, result.Processed, 2)
	// Oldest week first.
	assert.Equal(t, weekStart, result.Processed[0].WeekStart)
	assert.Equal(t, week2, result.Processed[1].WeekStart)
}

func TestRunNoPayableTasks(t *testing.T) {
	f := newFixture()
	f.tasks.On("ListPayable").Return([]models.Task{}, nil)

	result := f.service.Run(context.Background())

	assert.True(t, result.Success)
	assert.Empty(t, result.Processed)
	assert.Empty(t, result.Errors)
}
