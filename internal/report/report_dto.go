package report

import "github.com/shopspring/decimal"

const (
	PeriodThisYear    = "this-year"
	PeriodLastQuarter = "last-quarter"
)

type PayrollSummaryRequest struct {
	Period string `json:"period" binding:"omitempty,oneof=this-year last-quarter"`
}

type PeriodWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type PayrollSummaryResponse struct {
	TotalGrossPay   decimal.Decimal            `json:"totalGrossPay"`
	TotalTaxes      decimal.Decimal            `json:"totalTaxes"`
	TotalNetPay     decimal.Decimal            `json:"totalNetPay"`
	EmployeeCount   int                        `json:"employeeCount"`
	DepartmentCosts map[string]decimal.Decimal `json:"departmentCosts"`
	Period          PeriodWindow               `json:"period"`
}
