package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollRun is the immutable historical record of one run: period scope,
// population totals and one snapshot line per employee. Never updated or
// deleted after insert.
type PayrollRun struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	PayPeriod   string    `gorm:"type:varchar(50);not null"`
	PeriodStart time.Time `gorm:"type:date;not null;index:idx_run_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_run_period"`

	TotalGrossPay decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalTaxes    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalNetPay   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	EmployeeCount int             `gorm:"not null"`

	CreatedAt time.Time `gorm:"index"`

	Lines []PayrollRunLine `gorm:"foreignKey:PayrollRunID"`
}

// PayrollRunLine is a point-in-time copy per employee, decoupled from the
// live employee record. Position preserves population iteration order.
type PayrollRunLine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position     int       `gorm:"not null"`

	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null"`
	EmployeeName string          `gorm:"type:varchar(255);not null"`
	GrossPay     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Taxes        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetPay       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// RunEmployee is the slice of the employees table the run aggregator reads:
// identity plus the wage inputs the calculator consumes.
type RunEmployee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeName  string
	BasicSalary   decimal.Decimal
	OtherPayment  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	StudentLoan   decimal.Decimal
	CreatedAt     time.Time
}

func (RunEmployee) TableName() string {
	return "employees"
}
