package employee

import "github.com/shopspring/decimal"

// Field names mirror the stored document shape: clients submit and receive
// the same camelCase keys the records are persisted under.

type CreateEmployeeRequest struct {
	EmployeeName string `json:"employeeName" binding:"required"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
	Gender       string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Status       string `json:"status" binding:"omitempty,oneof=Active 'On Leave'"`

	Department  string `json:"department"`
	Position    string `json:"position"`
	PayPeriod   string `json:"payPeriod"`
	NextPayDate string `json:"nextPayDate"`

	BasicSalary   decimal.Decimal `json:"basicSalary"`
	OtherPayment  decimal.Decimal `json:"otherPayment"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
	StudentLoan   decimal.Decimal `json:"studentLoan"`

	TaxCode string `json:"taxCode"`
	SIN     string `json:"sin" binding:"required"`
	NICode  string `json:"niCode"`
}

// UpdateEmployeeRequest is a full-field replace, same shape as create.
type UpdateEmployeeRequest = CreateEmployeeRequest

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
	Gender       string `json:"gender"`
	Status       string `json:"status"`

	Department  string `json:"department"`
	Position    string `json:"position"`
	PayPeriod   string `json:"payPeriod"`
	NextPayDate string `json:"nextPayDate"`

	BasicSalary   decimal.Decimal `json:"basicSalary"`
	OtherPayment  decimal.Decimal `json:"otherPayment"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
	StudentLoan   decimal.Decimal `json:"studentLoan"`

	TaxCode string `json:"taxCode"`
	SIN     string `json:"sin"`
	NICode  string `json:"niCode"`

	TaxablePay      decimal.Decimal `json:"taxablePay"`
	PensionPay      decimal.Decimal `json:"pensionPay"`
	NIPayment       decimal.Decimal `json:"niPayment"`
	TaxPayment      decimal.Decimal `json:"taxPayment"`
	NetPay          decimal.Decimal `json:"netPay"`
	PayCalculatedAt string          `json:"payCalculatedAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
