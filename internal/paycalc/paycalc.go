// Package paycalc computes a single employee's pay breakdown from its raw
// wage inputs. The calculator is a pure function over decimal values: it
// holds no state, touches no store, and the same inputs always produce the
// same breakdown. Statutory rates are illustrative constants carried in an
// explicit Rates value, never package globals, so tests can exercise
// multiple regimes.
package paycalc

import "github.com/shopspring/decimal"

// Inputs are the wage fields read off an employee record. The zero value of
// every field is a valid input; missing fields simply contribute nothing.
type Inputs struct {
	BasicSalary   decimal.Decimal
	OtherPayment  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	StudentLoan   decimal.Decimal
}

// Rates is one statutory regime. MonthlyAllowance is subtracted from gross
// before income tax; NIRate applies only to gross above NIThreshold.
type Rates struct {
	MonthlyAllowance   decimal.Decimal
	IncomeTaxRate      decimal.Decimal
	NIThreshold        decimal.Decimal
	NIRate             decimal.Decimal
	PensionRate        decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

// Breakdown is the computed snapshot written back onto the employee record.
// All amounts are rounded to 2 decimal places.
type Breakdown struct {
	GrossPay   decimal.Decimal
	TaxablePay decimal.Decimal
	PensionPay decimal.Decimal
	NIPayment  decimal.Decimal
	TaxPayment decimal.Decimal
	NetPay     decimal.Decimal
}

// DefaultRates is the monthly-equivalent regime used by the calculate-pay
// action: 12570/12 personal allowance, 20% income tax, 12% NI above 1048,
// 5% pension. Overtime multiplier defaults to 1; the employee service
// substitutes the company-settings multiplier when one is configured.
func DefaultRates() Rates {
	return Rates{
		MonthlyAllowance:   decimal.NewFromInt(12570).Div(decimal.NewFromInt(12)),
		IncomeTaxRate:      decimal.NewFromFloat(0.20),
		NIThreshold:        decimal.NewFromInt(1048),
		NIRate:             decimal.NewFromFloat(0.12),
		PensionRate:        decimal.NewFromFloat(0.05),
		OvertimeMultiplier: decimal.NewFromInt(1),
	}
}

// RunRates is the flat regime applied per employee during a payroll run:
// 15% income tax on the whole gross, no allowance, no NI, no pension.
func RunRates() Rates {
	return Rates{
		IncomeTaxRate:      decimal.NewFromFloat(0.15),
		OvertimeMultiplier: decimal.NewFromInt(1),
	}
}

// Calculate maps inputs to a pay breakdown under the given rates. It is
// total on its numeric domain: negative or zero inputs produce degenerate
// but well-defined outputs, and net pay may go negative when the student
// loan amount exceeds what is left after deductions.
func Calculate(in Inputs, r Rates) Breakdown {
	overtime := in.OvertimeHours.Mul(in.HourlyRate)
	if !r.OvertimeMultiplier.IsZero() {
		overtime = overtime.Mul(r.OvertimeMultiplier)
	}
	gross := in.BasicSalary.Add(in.OtherPayment).Add(overtime)

	taxable := gross.Sub(r.MonthlyAllowance)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax := taxable.Mul(r.IncomeTaxRate)

	ni := decimal.Zero
	if gross.GreaterThan(r.NIThreshold) && !r.NIRate.IsZero() {
		ni = gross.Sub(r.NIThreshold).Mul(r.NIRate)
	}

	pension := gross.Mul(r.PensionRate)

	// Round each component first so net is exactly gross minus the stored
	// deductions, not a separately rounded quantity.
	gross = gross.Round(2)
	tax = tax.Round(2)
	ni = ni.Round(2)
	pension = pension.Round(2)

	net := gross.Sub(tax).Sub(ni).Sub(pension).Sub(in.StudentLoan).Round(2)

	return Breakdown{
		GrossPay:   gross,
		TaxablePay: taxable.Round(2),
		PensionPay: pension,
		NIPayment:  ni,
		TaxPayment: tax,
		NetPay:     net,
	}
}
