package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings is a singleton row: the first GET creates it with defaults,
// PUT overwrites it in place.
type CompanySettings struct {
	ID uint `gorm:"primaryKey"`

	CompanyName    string `gorm:"type:varchar(255);not null;default:'Example Corp'"`
	CompanyEmail   string `gorm:"type:varchar(255);not null;default:'contact@example.com'"`
	CompanyPhone   string `gorm:"type:varchar(50);not null;default:'123-456-7890'"`
	CompanyAddress string `gorm:"type:text;not null;default:'123 Main St, Anytown, CA 12345'"`

	Timezone      string `gorm:"type:varchar(50);not null;default:'PST'"`
	WorkStartTime string `gorm:"type:varchar(5);not null;default:'09:00'"`
	WorkEndTime   string `gorm:"type:varchar(5);not null;default:'17:00'"`

	Currency         string `gorm:"type:varchar(10);not null;default:'CAD'"`
	PayrollFrequency string `gorm:"type:varchar(20);not null;default:'Bi-Weekly'"`

	OvertimeRateMultiplier decimal.Decimal `gorm:"type:numeric(4,2);not null;default:1.5"`
	DefaultBreakDuration   int             `gorm:"not null;default:60"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		ID:                     1,
		CompanyName:            "Example Corp",
		CompanyEmail:           "contact@example.com",
		CompanyPhone:           "123-456-7890",
		CompanyAddress:         "123 Main St, Anytown, CA 12345",
		Timezone:               "PST",
		WorkStartTime:          "09:00",
		WorkEndTime:            "17:00",
		Currency:               "CAD",
		PayrollFrequency:       "Bi-Weekly",
		OvertimeRateMultiplier: decimal.RequireFromString("1.5"),
		DefaultBreakDuration:   60,
	}
}
