package employee

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	employeeerrors "github.com/Netrahoni/SmartPayroll/internal/employee/errors"
	"github.com/Netrahoni/SmartPayroll/internal/events"
	"github.com/Netrahoni/SmartPayroll/internal/messaging/kafka"
	"github.com/Netrahoni/SmartPayroll/internal/paycalc"
	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
	"github.com/Netrahoni/SmartPayroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsProvider supplies the company-wide overtime multiplier consumed by
// the calculate-pay action. Kept as a narrow interface so the settings module
// stays a one-way dependency.
type SettingsProvider interface {
	OvertimeMultiplier(ctx context.Context) (decimal.Decimal, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	CalculatePay(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	settings SettingsProvider
	rates    paycalc.Rates
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	settings SettingsProvider,
	rates paycalc.Rates,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, nil, settings, rates, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	settings SettingsProvider,
	rates paycalc.Rates,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		settings: settings,
		rates:    rates,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_name", req.EmployeeName),
	)

	empl, err := entityFromRequest(req)
	if err != nil {
		s.logger.Warn("create employee invalid input", zap.Error(err))
		return EmployeeResponse{}, err
	}
	empl.ID = uuid.New()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, apperror.Persistence(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		sqlTx, err := kafka.SQLTx(tx)
		if err != nil {
			s.logger.Error("create employee tx unwrap failed", zap.Error(err))
			return EmployeeResponse{}, apperror.Persistence(err)
		}

		outboxRepo := s.outbox.WithTx(sqlTx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	incoming, err := entityFromRequest(req)
	if err != nil {
		s.logger.Warn("update employee invalid input", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Full-field replace of the inputs. The computed snapshot is left as it
	// was: it goes stale until the calculate action runs again.
	empl.EmployeeName = incoming.EmployeeName
	empl.Address = incoming.Address
	empl.PostalCode = incoming.PostalCode
	empl.Gender = incoming.Gender
	empl.Status = incoming.Status
	empl.Department = incoming.Department
	empl.Position = incoming.Position
	empl.PayPeriod = incoming.PayPeriod
	empl.NextPayDate = incoming.NextPayDate
	empl.BasicSalary = incoming.BasicSalary
	empl.OtherPayment = incoming.OtherPayment
	empl.OvertimeHours = incoming.OvertimeHours
	empl.HourlyRate = incoming.HourlyRate
	empl.StudentLoan = incoming.StudentLoan
	empl.TaxCode = incoming.TaxCode
	empl.SIN = incoming.SIN
	empl.NICode = incoming.NICode

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// CalculatePay runs the calculator over the employee's current inputs and
// persists the breakdown as the new snapshot. This is the only code path
// that refreshes the computed fields.
func (s *service) CalculatePay(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	rates := s.rates
	if s.settings != nil {
		if mult, err := s.settings.OvertimeMultiplier(ctx); err == nil && mult.IsPositive() {
			rates.OvertimeMultiplier = mult
		}
	}

	breakdown := paycalc.Calculate(paycalc.Inputs{
		BasicSalary:   empl.BasicSalary,
		OtherPayment:  empl.OtherPayment,
		OvertimeHours: empl.OvertimeHours,
		HourlyRate:    empl.HourlyRate,
		StudentLoan:   empl.StudentLoan,
	}, rates)

	now := time.Now().UTC()
	empl.TaxablePay = breakdown.TaxablePay
	empl.PensionPay = breakdown.PensionPay
	empl.NIPayment = breakdown.NIPayment
	empl.TaxPayment = breakdown.TaxPayment
	empl.NetPay = breakdown.NetPay
	empl.PayCalculatedAt = &now

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("calculate pay persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("calculate pay success",
		zap.String("employee_id", id),
		zap.String("net_pay", breakdown.NetPay.String()),
	)

	return mapToResponse(*empl), nil
}

func entityFromRequest(req CreateEmployeeRequest) (*Employee, error) {
	if strings.TrimSpace(req.EmployeeName) == "" {
		return nil, employeeerrors.ErrEmployeeNameRequired
	}
	if strings.TrimSpace(req.SIN) == "" {
		return nil, employeeerrors.ErrSINRequired
	}

	nextPayDate := time.Now().UTC()
	if req.NextPayDate != "" {
		parsed, err := time.Parse("2006-01-02", req.NextPayDate)
		if err != nil {
			return nil, employeeerrors.ErrInvalidNextPayDate
		}
		nextPayDate = parsed
	}

	empl := &Employee{
		EmployeeName:  strings.TrimSpace(req.EmployeeName),
		Address:       strings.TrimSpace(req.Address),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Gender:        req.Gender,
		Status:        req.Status,
		Department:    strings.TrimSpace(req.Department),
		Position:      strings.TrimSpace(req.Position),
		PayPeriod:     req.PayPeriod,
		NextPayDate:   nextPayDate,
		BasicSalary:   req.BasicSalary,
		OtherPayment:  req.OtherPayment,
		OvertimeHours: req.OvertimeHours,
		HourlyRate:    req.HourlyRate,
		StudentLoan:   req.StudentLoan,
		TaxCode:       strings.TrimSpace(req.TaxCode),
		SIN:           strings.TrimSpace(req.SIN),
		NICode:        strings.TrimSpace(req.NICode),
	}

	if empl.Gender == "" {
		empl.Gender = GenderOther
	}
	if empl.Status == "" {
		empl.Status = StatusActive
	}
	if empl.PayPeriod == "" {
		empl.PayPeriod = "Monthly"
	}
	if empl.TaxCode == "" {
		empl.TaxCode = DefaultTaxCode
	}
	if empl.NICode == "" {
		empl.NICode = DefaultNICode
	}

	return empl, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            empl.ID.String(),
		EmployeeName:  empl.EmployeeName,
		Address:       empl.Address,
		PostalCode:    empl.PostalCode,
		Gender:        empl.Gender,
		Status:        empl.Status,
		Department:    empl.Department,
		Position:      empl.Position,
		PayPeriod:     empl.PayPeriod,
		NextPayDate:   empl.NextPayDate.Format("2006-01-02"),
		BasicSalary:   empl.BasicSalary,
		OtherPayment:  empl.OtherPayment,
		OvertimeHours: empl.OvertimeHours,
		HourlyRate:    empl.HourlyRate,
		StudentLoan:   empl.StudentLoan,
		TaxCode:       empl.TaxCode,
		SIN:           empl.SIN,
		NICode:        empl.NICode,
		TaxablePay:    empl.TaxablePay,
		PensionPay:    empl.PensionPay,
		NIPayment:     empl.NIPayment,
		TaxPayment:    empl.TaxPayment,
		NetPay:        empl.NetPay,
		CreatedAt:     empl.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     empl.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if empl.PayCalculatedAt != nil {
		resp.PayCalculatedAt = empl.PayCalculatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
