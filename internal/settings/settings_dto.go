package settings

import "github.com/shopspring/decimal"

type UpdateCompanySettingsRequest struct {
	CompanyName    string `json:"companyName" binding:"required"`
	CompanyEmail   string `json:"companyEmail" binding:"required,email"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyAddress string `json:"companyAddress"`

	Timezone      string `json:"timezone"`
	WorkStartTime string `json:"workStartTime"`
	WorkEndTime   string `json:"workEndTime"`

	Currency         string `json:"currency"`
	PayrollFrequency string `json:"payrollFrequency" binding:"omitempty,oneof=Weekly Bi-Weekly Monthly"`

	OvertimeRateMultiplier decimal.Decimal `json:"overtimeRateMultiplier"`
	DefaultBreakDuration   int             `json:"defaultBreakDuration"`
}

type CompanySettingsResponse struct {
	CompanyName    string `json:"companyName"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyAddress string `json:"companyAddress"`

	Timezone      string `json:"timezone"`
	WorkStartTime string `json:"workStartTime"`
	WorkEndTime   string `json:"workEndTime"`

	Currency         string `json:"currency"`
	PayrollFrequency string `json:"payrollFrequency"`

	OvertimeRateMultiplier decimal.Decimal `json:"overtimeRateMultiplier"`
	DefaultBreakDuration   int             `json:"defaultBreakDuration"`

	UpdatedAt string `json:"updatedAt"`
}
