package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/Netrahoni/SmartPayroll/internal/events"
	"github.com/Netrahoni/SmartPayroll/internal/messaging/kafka"
	"github.com/Netrahoni/SmartPayroll/internal/payroll"
	payrollerrors "github.com/Netrahoni/SmartPayroll/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeRunRepository struct {
	withTxFn          func(tx *gorm.DB) payroll.Repository
	createFn          func(ctx context.Context, run *payroll.PayrollRun) error
	findAllFn         func(ctx context.Context) ([]payroll.PayrollRun, error)
	findByIDFn        func(ctx context.Context, id string) (*payroll.PayrollRun, error)
	listEmployeesFn   func(ctx context.Context) ([]payroll.RunEmployee, error)
	hasRunForPeriodFn func(ctx context.Context, payPeriod string, periodStart, periodEnd time.Time) (bool, error)
}

func (f *fakeRunRepository) WithTx(tx *gorm.DB) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRunRepository) Create(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createFn != nil {
		return f.createFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) FindAll(ctx context.Context) ([]payroll.PayrollRun, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRunRepository) FindByID(ctx context.Context, id string) (*payroll.PayrollRun, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) ListEmployees(ctx context.Context) ([]payroll.RunEmployee, error) {
	if f.listEmployeesFn != nil {
		return f.listEmployeesFn(ctx)
	}
	return nil, nil
}

func (f *fakeRunRepository) HasRunForPeriod(ctx context.Context, payPeriod string, periodStart, periodEnd time.Time) (bool, error) {
	if f.hasRunForPeriodFn != nil {
		return f.hasRunForPeriodFn(ctx, payPeriod, periodStart, periodEnd)
	}
	return false, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type runServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.Service
	repo    *fakeRunRepository
	outbox  *fakeOutboxRepository
}

func setupRunServiceTest(t *testing.T) *runServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	repo := &fakeRunRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payroll.NewServiceWithOutbox(gormDB, repo, outbox)

	return &runServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func salariedEmployee(name string, basicSalary string) payroll.RunEmployee {
	return payroll.RunEmployee{
		ID:           uuid.New(),
		EmployeeName: name,
		BasicSalary:  decimal.RequireFromString(basicSalary),
	}
}

func TestPayrollService_Run(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.listEmployeesFn = func(ctx context.Context) ([]payroll.RunEmployee, error) {
		return []payroll.RunEmployee{
			salariedEmployee("Alice Ray", "1000"),
			salariedEmployee("Bob Finch", "2000"),
			salariedEmployee("Carol Oduya", "1500"),
		}, nil
	}

	var persisted *payroll.PayrollRun
	deps.repo.createFn = func(ctx context.Context, run *payroll.PayrollRun) error {
		persisted = run
		return nil
	}

	var published kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		published = event
		return nil
	}

	resp, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
		PayPeriod:   "February 2026",
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.EmployeeCount)
	assert.True(t, resp.TotalGrossPay.Equal(decimal.RequireFromString("4500")))
	assert.True(t, resp.TotalTaxes.Equal(decimal.RequireFromString("675")))
	assert.True(t, resp.TotalNetPay.Equal(decimal.RequireFromString("3825")))

	assert.Len(t, resp.EmployeeDetails, 3)
	assert.Equal(t, "Alice Ray", resp.EmployeeDetails[0].EmployeeName)
	assert.True(t, resp.EmployeeDetails[0].GrossPay.Equal(decimal.RequireFromString("1000")))
	assert.True(t, resp.EmployeeDetails[0].Taxes.Equal(decimal.RequireFromString("150")))
	assert.True(t, resp.EmployeeDetails[0].NetPay.Equal(decimal.RequireFromString("850")))
	assert.Equal(t, "Bob Finch", resp.EmployeeDetails[1].EmployeeName)
	assert.Equal(t, "Carol Oduya", resp.EmployeeDetails[2].EmployeeName)

	assert.NotNil(t, persisted)
	assert.Equal(t, 0, persisted.Lines[0].Position)
	assert.Equal(t, 2, persisted.Lines[2].Position)

	assert.Equal(t, events.PayrollRunCompletedTopic, published.Topic)
	assert.Equal(t, "payroll_run", published.AggregateType)
	var event events.PayrollRunCompletedEvent
	assert.NoError(t, json.Unmarshal(published.Payload, &event))
	assert.Equal(t, "payroll_run_completed", event.EventType)
	assert.Equal(t, 3, event.EmployeeCount)
	assert.Equal(t, "3825.00", event.TotalNetPay)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Run_MissingFields(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
		PayPeriod:   "February 2026",
		PeriodStart: "2026-02-01",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrMissingRunFields)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Run_InvalidPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("unparseable date", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
			PayPeriod:   "February 2026",
			PeriodStart: "01/02/2026",
			PeriodEnd:   "2026-02-28",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodDate)
	})

	t.Run("start after end", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
			PayPeriod:   "February 2026",
			PeriodStart: "2026-02-28",
			PeriodEnd:   "2026-02-01",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodOutOfOrder)
	})
}

func TestPayrollService_Run_NoEmployees(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.listEmployeesFn = func(ctx context.Context) ([]payroll.RunEmployee, error) {
		return []payroll.RunEmployee{}, nil
	}

	_, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
		PayPeriod:   "February 2026",
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrNoEmployees)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Run_DuplicatePeriod(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.hasRunForPeriodFn = func(ctx context.Context, payPeriod string, periodStart, periodEnd time.Time) (bool, error) {
		assert.Equal(t, "February 2026", payPeriod)
		return true, nil
	}

	_, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
		PayPeriod:   "February 2026",
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrRunAlreadyExists)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Run_TotalsMatchLineSums(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.listEmployeesFn = func(ctx context.Context) ([]payroll.RunEmployee, error) {
		return []payroll.RunEmployee{
			salariedEmployee("A", "1000.33"),
			salariedEmployee("B", "2000.67"),
			salariedEmployee("C", "99.99"),
		}, nil
	}

	resp, err := deps.service.Run(ctx, payroll.RunPayrollRequest{
		PayPeriod:   "March 2026",
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})

	assert.NoError(t, err)

	sumGross := decimal.Zero
	sumTaxes := decimal.Zero
	sumNet := decimal.Zero
	for _, line := range resp.EmployeeDetails {
		sumGross = sumGross.Add(line.GrossPay)
		sumTaxes = sumTaxes.Add(line.Taxes)
		sumNet = sumNet.Add(line.NetPay)
	}

	assert.True(t, resp.TotalGrossPay.Equal(sumGross))
	assert.True(t, resp.TotalTaxes.Equal(sumTaxes))
	assert.True(t, resp.TotalNetPay.Equal(sumNet))
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.GetByID(ctx, uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrRunNotFound)
}

func TestPayrollService_GetAll(t *testing.T) {
	ctx := context.Background()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	runID := uuid.New()
	deps.repo.findAllFn = func(ctx context.Context) ([]payroll.PayrollRun, error) {
		return []payroll.PayrollRun{{
			ID:            runID,
			PayPeriod:     "January 2026",
			PeriodStart:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			TotalGrossPay: decimal.RequireFromString("4500"),
			TotalTaxes:    decimal.RequireFromString("675"),
			TotalNetPay:   decimal.RequireFromString("3825"),
			EmployeeCount: 3,
			Lines: []payroll.PayrollRunLine{
				{EmployeeID: uuid.New(), EmployeeName: "Alice Ray", GrossPay: decimal.RequireFromString("1000")},
			},
		}}, nil
	}

	resp, err := deps.service.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, runID.String(), resp[0].ID)
	assert.Equal(t, "2026-01-01", resp[0].PeriodStart)
	assert.Equal(t, "2026-01-31", resp[0].PeriodEnd)
	assert.Len(t, resp[0].EmployeeDetails, 1)
	assert.Equal(t, "Alice Ray", resp[0].EmployeeDetails[0].EmployeeName)
}

func TestRunRepository_WithTx_WritesOnCallerTransaction(t *testing.T) {
	ctx := context.Background()

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	txGorm, err := gorm.Open(postgres.New(postgres.Config{Conn: txDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	poolGorm, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	// Repository bound to one connection, transaction opened on another.
	// Every statement must land on the transaction's connection.
	repo := payroll.NewRepository(poolGorm)

	txMock.ExpectBegin()
	tx := txGorm.Begin()
	assert.NoError(t, tx.Error)

	txMock.ExpectExec(`INSERT INTO "payroll_runs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	txMock.ExpectExec(`INSERT INTO "payroll_run_lines"`).
		WillReturnResult(sqlmock.NewResult(1, 2))

	runID := uuid.New()
	run := &payroll.PayrollRun{
		ID:            runID,
		PayPeriod:     "January 2026",
		PeriodStart:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		TotalGrossPay: decimal.RequireFromString("5000"),
		TotalTaxes:    decimal.RequireFromString("750"),
		TotalNetPay:   decimal.RequireFromString("4250"),
		EmployeeCount: 2,
		Lines: []payroll.PayrollRunLine{
			{ID: uuid.New(), PayrollRunID: runID, Position: 0, EmployeeID: uuid.New(), EmployeeName: "Alice Ray", GrossPay: decimal.RequireFromString("3000"), Taxes: decimal.RequireFromString("450"), NetPay: decimal.RequireFromString("2550")},
			{ID: uuid.New(), PayrollRunID: runID, Position: 1, EmployeeID: uuid.New(), EmployeeName: "Ben Cole", GrossPay: decimal.RequireFromString("2000"), Taxes: decimal.RequireFromString("300"), NetPay: decimal.RequireFromString("1700")},
		},
	}

	err = repo.WithTx(tx).Create(ctx, run)
	assert.NoError(t, err)

	txMock.ExpectRollback()
	assert.NoError(t, tx.Rollback().Error)

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
