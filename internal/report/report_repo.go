package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportEmployee is the projection of the employees table the summary reads:
// the department bucket key plus the stored pay snapshot fields.
type ReportEmployee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Department  string
	BasicSalary decimal.Decimal
	TaxPayment  decimal.Decimal
	NetPay      decimal.Decimal
	CreatedAt   time.Time
}

func (ReportEmployee) TableName() string {
	return "employees"
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]ReportEmployee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListCreatedBetween is inclusive at both bounds.
func (r *repository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]ReportEmployee, error) {
	var empls []ReportEmployee
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}
