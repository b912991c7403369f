package report

import (
	"context"
	"time"

	reporterrors "github.com/Netrahoni/SmartPayroll/internal/report/errors"
	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"
	"github.com/Netrahoni/SmartPayroll/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	PayrollSummary(ctx context.Context, req PayrollSummaryRequest) (PayrollSummaryResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// ResolveWindow turns a named period selector into a concrete inclusive
// [start, end] window. Quarters follow the standard calendar quarters, so
// last-quarter asked in January resolves to Oct 1 through Dec 31 of the
// previous year.
func ResolveWindow(period string, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()

	switch period {
	case "", PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 999999999, time.UTC)
		return start, end, nil

	case PeriodLastQuarter:
		quarterStartMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		currentQuarterStart := time.Date(now.Year(), quarterStartMonth, 1, 0, 0, 0, 0, time.UTC)
		start := currentQuarterStart.AddDate(0, -3, 0)
		end := currentQuarterStart.Add(-time.Nanosecond)
		return start, end, nil

	default:
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidPeriod
	}
}

func (s *service) PayrollSummary(ctx context.Context, req PayrollSummaryRequest) (PayrollSummaryResponse, error) {
	start, end, err := ResolveWindow(req.Period, s.now())
	if err != nil {
		return PayrollSummaryResponse{}, err
	}

	empls, err := s.repo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		s.logger.Error("payroll summary query failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return PayrollSummaryResponse{}, apperror.Persistence(err)
	}

	// Straight sums over the stored snapshots, never recomputed: the report
	// reflects whatever the last explicit calculation left behind.
	totalGross := decimal.Zero
	totalTaxes := decimal.Zero
	totalNet := decimal.Zero
	departmentCosts := make(map[string]decimal.Decimal, 8)

	for _, emp := range empls {
		gross := emp.BasicSalary
		totalGross = totalGross.Add(gross)
		totalTaxes = totalTaxes.Add(emp.TaxPayment)
		totalNet = totalNet.Add(emp.NetPay)

		// An empty department is its own bucket, not dropped.
		departmentCosts[emp.Department] = departmentCosts[emp.Department].Add(gross)
	}

	s.logger.Debug("payroll summary built",
		zap.String("period", req.Period),
		zap.Int("employee_count", len(empls)),
	)

	return PayrollSummaryResponse{
		TotalGrossPay:   totalGross,
		TotalTaxes:      totalTaxes,
		TotalNetPay:     totalNet,
		EmployeeCount:   len(empls),
		DepartmentCosts: departmentCosts,
		Period: PeriodWindow{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
	}, nil
}
