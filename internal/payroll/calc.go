package payroll

import "github.com/shopspring/decimal"

// DaysPerMonth is the fixed divisor for the per-day rate, whatever the calendar month.
const DaysPerMonth = 30

type Breakdown struct {
	PerDay    decimal.Decimal
	Deduction decimal.Decimal
	Net       decimal.Decimal
}

// Compute derives the leave deduction and net pay, both rounded to 2 places.
// Negative unpaid counts are treated as zero.
func Compute(base decimal.Decimal, unpaidLeaves int) Breakdown {
	if unpaidLeaves < 0 {
		unpaidLeaves = 0
	}
	perDay := base.Div(decimal.NewFromInt(DaysPerMonth))
	deduction := perDay.Mul(decimal.NewFromInt(int64(unpaidLeaves))).Round(2)
	return Breakdown{
		PerDay:    perDay,
		Deduction: deduction,
		Net:       base.Sub(deduction).Round(2),
	}
}
