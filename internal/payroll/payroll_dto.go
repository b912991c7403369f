package payroll

import "github.com/shopspring/decimal"

type RunPayrollRequest struct {
	PayPeriod   string `json:"payPeriod"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

type EmployeeDetail struct {
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	GrossPay     decimal.Decimal `json:"grossPay"`
	Taxes        decimal.Decimal `json:"taxes"`
	NetPay       decimal.Decimal `json:"netPay"`
}

type PayrollRunResponse struct {
	ID              string           `json:"id"`
	PayPeriod       string           `json:"payPeriod"`
	PeriodStart     string           `json:"periodStart"`
	PeriodEnd       string           `json:"periodEnd"`
	TotalGrossPay   decimal.Decimal  `json:"totalGrossPay"`
	TotalTaxes      decimal.Decimal  `json:"totalTaxes"`
	TotalNetPay     decimal.Decimal  `json:"totalNetPay"`
	EmployeeCount   int              `json:"employeeCount"`
	EmployeeDetails []EmployeeDetail `json:"employeeDetails"`
	CreatedAt       string           `json:"createdAt"`
}
