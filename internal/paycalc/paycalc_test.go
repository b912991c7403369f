package paycalc_test

import (
	"testing"

	"github.com/Netrahoni/SmartPayroll/internal/paycalc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculate_GrossBelowAllowance(t *testing.T) {
	// 1000 gross sits under the 1047.50 monthly allowance: taxable floors
	// at zero and no income tax is due.
	in := paycalc.Inputs{BasicSalary: dec("1000")}

	out := paycalc.Calculate(in, paycalc.DefaultRates())

	assert.True(t, out.GrossPay.Equal(dec("1000")), "gross = %s", out.GrossPay)
	assert.True(t, out.TaxablePay.IsZero(), "taxable = %s", out.TaxablePay)
	assert.True(t, out.TaxPayment.IsZero(), "tax = %s", out.TaxPayment)
}

func TestCalculate_FullBreakdown(t *testing.T) {
	in := paycalc.Inputs{
		BasicSalary:   dec("3000"),
		OtherPayment:  dec("200"),
		OvertimeHours: dec("10"),
		HourlyRate:    dec("20"),
		StudentLoan:   dec("50"),
	}

	out := paycalc.Calculate(in, paycalc.DefaultRates())

	assert.True(t, out.GrossPay.Equal(dec("3400")), "gross = %s", out.GrossPay)
	assert.True(t, out.TaxablePay.Equal(dec("2352.50")), "taxable = %s", out.TaxablePay)
	assert.True(t, out.TaxPayment.Equal(dec("470.50")), "tax = %s", out.TaxPayment)
	assert.True(t, out.NIPayment.Equal(dec("282.24")), "ni = %s", out.NIPayment)
	assert.True(t, out.PensionPay.Equal(dec("170")), "pension = %s", out.PensionPay)

	// Net must equal gross minus the four deductions exactly.
	wantNet := out.GrossPay.
		Sub(out.TaxPayment).
		Sub(out.NIPayment).
		Sub(out.PensionPay).
		Sub(in.StudentLoan)
	assert.True(t, out.NetPay.Equal(wantNet), "net = %s, want %s", out.NetPay, wantNet)
	assert.True(t, out.NetPay.Equal(dec("2427.26")), "net = %s", out.NetPay)
}

func TestCalculate_ZeroInputs(t *testing.T) {
	out := paycalc.Calculate(paycalc.Inputs{}, paycalc.DefaultRates())

	assert.True(t, out.GrossPay.IsZero())
	assert.True(t, out.TaxablePay.IsZero())
	assert.True(t, out.TaxPayment.IsZero())
	assert.True(t, out.NIPayment.IsZero())
	assert.True(t, out.PensionPay.IsZero())
	assert.True(t, out.NetPay.IsZero())
}

func TestCalculate_StudentLoanDrivesNetNegative(t *testing.T) {
	// Deliberate behavior: net pay is not floored at zero, so an employee
	// with no earnings and a student loan deduction goes negative.
	in := paycalc.Inputs{StudentLoan: dec("75")}

	out := paycalc.Calculate(in, paycalc.DefaultRates())

	assert.True(t, out.GrossPay.IsZero())
	assert.True(t, out.NetPay.Equal(dec("-75")), "net = %s", out.NetPay)
}

func TestCalculate_TaxableNeverNegative(t *testing.T) {
	for _, salary := range []string{"0", "0.01", "500", "1047.49", "1047.50"} {
		out := paycalc.Calculate(paycalc.Inputs{BasicSalary: dec(salary)}, paycalc.DefaultRates())
		assert.False(t, out.TaxablePay.IsNegative(), "salary %s produced taxable %s", salary, out.TaxablePay)
	}
}

func TestCalculate_NIOnlyAboveThreshold(t *testing.T) {
	rates := paycalc.DefaultRates()

	below := paycalc.Calculate(paycalc.Inputs{BasicSalary: dec("1048")}, rates)
	assert.True(t, below.NIPayment.IsZero(), "ni at threshold = %s", below.NIPayment)

	above := paycalc.Calculate(paycalc.Inputs{BasicSalary: dec("1148")}, rates)
	assert.True(t, above.NIPayment.Equal(dec("12")), "ni above threshold = %s", above.NIPayment)
}

func TestCalculate_Idempotent(t *testing.T) {
	in := paycalc.Inputs{
		BasicSalary:   dec("2741.33"),
		OtherPayment:  dec("13.37"),
		OvertimeHours: dec("7.5"),
		HourlyRate:    dec("19.95"),
		StudentLoan:   dec("120"),
	}
	rates := paycalc.DefaultRates()

	first := paycalc.Calculate(in, rates)
	second := paycalc.Calculate(in, rates)

	assert.Equal(t, first, second)
}

func TestCalculate_OvertimeMultiplier(t *testing.T) {
	rates := paycalc.DefaultRates()
	rates.OvertimeMultiplier = dec("1.5")

	in := paycalc.Inputs{OvertimeHours: dec("10"), HourlyRate: dec("20")}
	out := paycalc.Calculate(in, rates)

	assert.True(t, out.GrossPay.Equal(dec("300")), "gross = %s", out.GrossPay)
}

func TestCalculate_RunRatesFlatModel(t *testing.T) {
	// The run regime taxes the whole gross at 15% with no allowance, NI or
	// pension, so net is exactly 85% of gross.
	out := paycalc.Calculate(paycalc.Inputs{BasicSalary: dec("2000")}, paycalc.RunRates())

	assert.True(t, out.GrossPay.Equal(dec("2000")))
	assert.True(t, out.TaxPayment.Equal(dec("300")), "tax = %s", out.TaxPayment)
	assert.True(t, out.NIPayment.IsZero())
	assert.True(t, out.PensionPay.IsZero())
	assert.True(t, out.NetPay.Equal(dec("1700")), "net = %s", out.NetPay)
}

func TestCalculate_RoundsToTwoDecimals(t *testing.T) {
	// 3 hours at 10.333 is 30.999; every stored amount must carry at most
	// two decimal places.
	in := paycalc.Inputs{OvertimeHours: dec("3"), HourlyRate: dec("10.333")}

	out := paycalc.Calculate(in, paycalc.RunRates())

	assert.True(t, out.GrossPay.Equal(dec("31.00")), "gross = %s", out.GrossPay)
	assert.True(t, out.TaxPayment.Equal(dec("4.65")), "tax = %s", out.TaxPayment)
	assert.True(t, out.NetPay.Equal(dec("26.35")), "net = %s", out.NetPay)
}
