package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"

	StatusActive  = "Active"
	StatusOnLeave = "On Leave"

	DefaultTaxCode = "1257L"
	DefaultNICode  = "A"
)

// Employee carries the raw wage inputs plus the last computed pay snapshot.
// The snapshot is only refreshed by the explicit calculate-pay action, so it
// can go stale relative to the inputs; PayCalculatedAt makes that visible.
type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EmployeeName string `gorm:"type:varchar(255);not null"`
	Address      string `gorm:"type:text"`
	PostalCode   string `gorm:"type:varchar(20)"`
	Gender       string `gorm:"type:varchar(10);not null;default:'Other'"`
	Status       string `gorm:"type:varchar(20);not null;default:'Active'"`

	Department  string    `gorm:"type:varchar(120);index"`
	Position    string    `gorm:"type:varchar(120)"`
	PayPeriod   string    `gorm:"type:varchar(20);not null;default:'Monthly'"`
	NextPayDate time.Time `gorm:"type:date"`

	BasicSalary   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherPayment  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HourlyRate    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	StudentLoan   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	TaxCode string `gorm:"type:varchar(20);not null;default:'1257L'"`
	SIN     string `gorm:"column:sin;type:varchar(30);not null"`
	NICode  string `gorm:"column:ni_code;type:varchar(10);not null;default:'A'"`

	// Last computed snapshot. Derived, never edited directly.
	TaxablePay      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PensionPay      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NIPayment       decimal.Decimal `gorm:"column:ni_payment;type:numeric(12,2);not null;default:0"`
	TaxPayment      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetPay          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PayCalculatedAt *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
