package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Netrahoni/SmartPayroll/internal/events"
	"github.com/Netrahoni/SmartPayroll/internal/messaging/kafka"
	"github.com/Netrahoni/SmartPayroll/internal/paycalc"
	payrollerrors "github.com/Netrahoni/SmartPayroll/internal/payroll/errors"
	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
	"github.com/Netrahoni/SmartPayroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, req RunPayrollRequest) (PayrollRunResponse, error)
	GetAll(ctx context.Context) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, id string) (PayrollRunResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rates  paycalc.Rates
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rates:  paycalc.RunRates(),
		logger: l,
	}
}

// Run executes payroll for the given period over the whole employee
// population and persists exactly one immutable PayrollRun. Employee records
// are never mutated by a run.
func (s *service) Run(ctx context.Context, req RunPayrollRequest) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("run payroll requested",
		zap.String("request_id", rid),
		zap.String("pay_period", req.PayPeriod),
	)

	if strings.TrimSpace(req.PayPeriod) == "" ||
		strings.TrimSpace(req.PeriodStart) == "" ||
		strings.TrimSpace(req.PeriodEnd) == "" {
		return PayrollRunResponse{}, payrollerrors.ErrMissingRunFields
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidPeriodDate
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidPeriodDate
	}
	if periodStart.After(periodEnd) {
		return PayrollRunResponse{}, payrollerrors.ErrPeriodOutOfOrder
	}

	exists, err := s.repo.HasRunForPeriod(ctx, req.PayPeriod, periodStart, periodEnd)
	if err != nil {
		s.logger.Error("run payroll period check failed", zap.Error(err))
		return PayrollRunResponse{}, apperror.Persistence(err)
	}
	if exists {
		return PayrollRunResponse{}, payrollerrors.ErrRunAlreadyExists
	}

	empls, err := s.repo.ListEmployees(ctx)
	if err != nil {
		s.logger.Error("run payroll load employees failed", zap.Error(err))
		return PayrollRunResponse{}, apperror.Persistence(err)
	}
	if len(empls) == 0 {
		return PayrollRunResponse{}, payrollerrors.ErrNoEmployees
	}

	// Decimal accumulators keep the totals exactly equal to the line sums
	// regardless of population order.
	totalGross := decimal.Zero
	totalTaxes := decimal.Zero
	totalNet := decimal.Zero

	run := &PayrollRun{
		ID:            uuid.New(),
		PayPeriod:     req.PayPeriod,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		EmployeeCount: len(empls),
		Lines:         make([]PayrollRunLine, 0, len(empls)),
	}

	for i, emp := range empls {
		breakdown := paycalc.Calculate(paycalc.Inputs{
			BasicSalary:   emp.BasicSalary,
			OtherPayment:  emp.OtherPayment,
			OvertimeHours: emp.OvertimeHours,
			HourlyRate:    emp.HourlyRate,
			StudentLoan:   emp.StudentLoan,
		}, s.rates)

		taxes := breakdown.TaxPayment.Add(breakdown.NIPayment)

		totalGross = totalGross.Add(breakdown.GrossPay)
		totalTaxes = totalTaxes.Add(taxes)
		totalNet = totalNet.Add(breakdown.NetPay)

		run.Lines = append(run.Lines, PayrollRunLine{
			ID:           uuid.New(),
			PayrollRunID: run.ID,
			Position:     i,
			EmployeeID:   emp.ID,
			EmployeeName: emp.EmployeeName,
			GrossPay:     breakdown.GrossPay,
			Taxes:        taxes,
			NetPay:       breakdown.NetPay,
		})
	}

	run.TotalGrossPay = totalGross
	run.TotalTaxes = totalTaxes
	run.TotalNetPay = totalNet

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("run payroll begin tx failed", zap.Error(tx.Error))
		return PayrollRunResponse{}, apperror.Persistence(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, run); err != nil {
		s.logger.Error("run payroll persist failed", zap.Error(err))
		return PayrollRunResponse{}, apperror.Persistence(err)
	}

	if s.outbox != nil {
		event := events.PayrollRunCompletedEvent{
			EventType:     "payroll_run_completed",
			RequestID:     rid,
			PayrollRunID:  run.ID.String(),
			PayPeriod:     run.PayPeriod,
			EmployeeCount: run.EmployeeCount,
			TotalNetPay:   run.TotalNetPay.StringFixed(2),
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollRunResponse{}, err
		}

		sqlTx, err := kafka.SQLTx(tx)
		if err != nil {
			s.logger.Error("run payroll tx unwrap failed", zap.Error(err))
			return PayrollRunResponse{}, apperror.Persistence(err)
		}

		outboxRepo := s.outbox.WithTx(sqlTx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRunCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("run payroll outbox persist failed", zap.Error(err))
			return PayrollRunResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("run payroll commit failed", zap.Error(err))
		return PayrollRunResponse{}, apperror.Persistence(err)
	}

	s.logger.Info("run payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_run_id", run.ID.String()),
		zap.Int("employee_count", run.EmployeeCount),
		zap.String("total_net_pay", run.TotalNetPay.StringFixed(2)),
	)

	return mapToResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollRunResponse, error) {
	runs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all payroll runs failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	resp := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapToResponse(run)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollRunResponse, error) {
	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRunResponse{}, payrollerrors.ErrRunNotFound
		}
		s.logger.Error("get payroll run failed", zap.Error(err))
		return PayrollRunResponse{}, apperror.Persistence(err)
	}

	return mapToResponse(*run), nil
}

func mapToResponse(run PayrollRun) PayrollRunResponse {
	details := make([]EmployeeDetail, len(run.Lines))
	for i, line := range run.Lines {
		details[i] = EmployeeDetail{
			EmployeeID:   line.EmployeeID.String(),
			EmployeeName: line.EmployeeName,
			GrossPay:     line.GrossPay,
			Taxes:        line.Taxes,
			NetPay:       line.NetPay,
		}
	}

	return PayrollRunResponse{
		ID:              run.ID.String(),
		PayPeriod:       run.PayPeriod,
		PeriodStart:     run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       run.PeriodEnd.Format("2006-01-02"),
		TotalGrossPay:   run.TotalGrossPay,
		TotalTaxes:      run.TotalTaxes,
		TotalNetPay:     run.TotalNetPay,
		EmployeeCount:   run.EmployeeCount,
		EmployeeDetails: details,
		CreatedAt:       run.CreatedAt.UTC().Format(time.RFC3339),
	}
}
