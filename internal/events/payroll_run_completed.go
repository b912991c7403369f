package events

import "time"

const PayrollRunCompletedTopic = "payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	PayrollRunID  string    `json:"payroll_run_id"`
	PayPeriod     string    `json:"pay_period"`
	EmployeeCount int       `json:"employee_count"`
	TotalNetPay   string    `json:"total_net_pay"`
	OccurredAt    time.Time `json:"occurred_at"`
}
