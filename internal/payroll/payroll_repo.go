package payroll

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, run *PayrollRun) error
	FindAll(ctx context.Context) ([]PayrollRun, error)
	FindByID(ctx context.Context, id string) (*PayrollRun, error)
	ListEmployees(ctx context.Context) ([]RunEmployee, error)
	HasRunForPeriod(ctx context.Context, payPeriod string, periodStart, periodEnd time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every query to the caller's transaction, so the run and its
// lines commit or roll back together with the outbox row.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, run *PayrollRun) error {
	// Lines ride along through the association, one insert per run.
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) ListEmployees(ctx context.Context) ([]RunEmployee, error) {
	var empls []RunEmployee
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) HasRunForPeriod(ctx context.Context, payPeriod string, periodStart, periodEnd time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Where("pay_period = ?", payPeriod).
		Where("period_start = ?", periodStart).
		Where("period_end = ?", periodEnd).
		Count(&count).Error
	return count > 0, err
}
